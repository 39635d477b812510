package types

// SerializedPublicKey is the JWK text form of an RSA-OAEP public key, the form
// published with a profile and fetched for a peer.
type SerializedPublicKey string

// String returns the JWK text.
func (k SerializedPublicKey) String() string { return string(k) }
