package crypto

import (
	"crypto/rsa"
	"errors"
	"fmt"

	jose "github.com/go-jose/go-jose/v4"

	"spark/internal/domain"
)

const (
	// KeyAlgorithm is the JWK "alg" for identity keys: RSA-OAEP with SHA-256.
	KeyAlgorithm = string(jose.RSA_OAEP_256)
	keyUse       = "enc"
)

// SerializePublicKey renders pub as JWK text. Only public parameters are
// emitted because only a public key is accepted.
func SerializePublicKey(pub *rsa.PublicKey) (domain.SerializedPublicKey, error) {
	b, err := marshalPublicJWK(pub)
	if err != nil {
		return "", err
	}
	return domain.SerializedPublicKey(b), nil
}

// ParsePublicKey imports JWK text as an encryption-only RSA public key.
//
// Anything that could decrypt (private parameters), any non-RSA key, a JWK
// bound to another algorithm or use, and moduli below MinKeyBits are rejected
// with ErrKeyImportFailed.
func ParsePublicKey(text domain.SerializedPublicKey) (*rsa.PublicKey, error) {
	var jwk jose.JSONWebKey
	if err := jwk.UnmarshalJSON([]byte(text)); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrKeyImportFailed, err)
	}
	if !jwk.IsPublic() {
		return nil, fmt.Errorf("%w: key carries private parameters", domain.ErrKeyImportFailed)
	}
	pub, ok := jwk.Key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: want an RSA key, got %T", domain.ErrKeyImportFailed, jwk.Key)
	}
	if err := checkBinding(jwk); err != nil {
		return nil, err
	}
	if err := checkParams(pub); err != nil {
		return nil, err
	}
	return pub, nil
}

// checkParams rejects keys that parse but could never wrap a session key.
func checkParams(pub *rsa.PublicKey) error {
	if bits := pub.N.BitLen(); bits < MinKeyBits {
		return fmt.Errorf("%w: %d-bit modulus is below the %d-bit minimum", domain.ErrKeyImportFailed, bits, MinKeyBits)
	}
	if pub.N.Bit(0) == 0 {
		return fmt.Errorf("%w: modulus is even", domain.ErrKeyImportFailed)
	}
	if pub.E < 3 || pub.E%2 == 0 {
		return fmt.Errorf("%w: invalid public exponent %d", domain.ErrKeyImportFailed, pub.E)
	}
	return nil
}

func marshalPublicJWK(pub *rsa.PublicKey) ([]byte, error) {
	if pub == nil {
		return nil, errors.New("nil public key")
	}
	return jose.JSONWebKey{Key: pub, Algorithm: KeyAlgorithm, Use: keyUse}.MarshalJSON()
}

func marshalPrivateJWK(priv *rsa.PrivateKey) ([]byte, error) {
	if priv == nil {
		return nil, errors.New("nil private key")
	}
	return jose.JSONWebKey{Key: priv, Algorithm: KeyAlgorithm, Use: keyUse}.MarshalJSON()
}

func parsePrivateJWK(b []byte) (*rsa.PrivateKey, error) {
	var jwk jose.JSONWebKey
	if err := jwk.UnmarshalJSON(b); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrKeyImportFailed, err)
	}
	priv, ok := jwk.Key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: want an RSA private key, got %T", domain.ErrKeyImportFailed, jwk.Key)
	}
	if err := checkBinding(jwk); err != nil {
		return nil, err
	}
	if err := priv.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrKeyImportFailed, err)
	}
	priv.Precompute()
	return priv, nil
}

// checkBinding accepts keys without alg/use (as some exporters omit them) but
// rejects keys explicitly bound to something else.
func checkBinding(jwk jose.JSONWebKey) error {
	if jwk.Algorithm != "" && jwk.Algorithm != KeyAlgorithm {
		return fmt.Errorf("%w: key algorithm %q, want %q", domain.ErrKeyImportFailed, jwk.Algorithm, KeyAlgorithm)
	}
	if jwk.Use != "" && jwk.Use != keyUse {
		return fmt.Errorf("%w: key use %q, want %q", domain.ErrKeyImportFailed, jwk.Use, keyUse)
	}
	return nil
}
