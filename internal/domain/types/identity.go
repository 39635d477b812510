package types

import "crypto/rsa"

// IdentityKeyPair is the device's long-lived RSA-OAEP identity.
//
// The private half never leaves the device. It is generated exportable so the
// key store can persist it across restarts.
type IdentityKeyPair struct {
	Public  *rsa.PublicKey
	Private *rsa.PrivateKey
}

// IsZero reports whether the pair holds no key material.
func (p IdentityKeyPair) IsZero() bool { return p.Public == nil || p.Private == nil }
