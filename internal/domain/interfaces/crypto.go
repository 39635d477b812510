package interfaces

import (
	"crypto/rsa"
	"io"
)

// CryptoProvider supplies randomness and key generation. Production code uses
// the operating system CSPRNG; tests substitute failing or counting fakes.
type CryptoProvider interface {
	// Reader returns the source used for session keys, nonces and OAEP seeds.
	Reader() io.Reader
	GenerateRSAKey(bits int) (*rsa.PrivateKey, error)
}
