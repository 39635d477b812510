package crypto

import (
	"fmt"

	"spark/internal/domain"
)

const (
	// MinKeyBits is the smallest accepted RSA modulus.
	MinKeyBits = 2048
	// DefaultKeyBits is the modulus used for new identities.
	DefaultKeyBits = 2048
)

// GenerateIdentity creates a new RSA-OAEP identity of the given size.
//
// The private key is plain exportable key material. Keeping it exportable is
// what lets the key store persist it across restarts.
func GenerateIdentity(p domain.CryptoProvider, bits int) (domain.IdentityKeyPair, error) {
	if bits < MinKeyBits {
		return domain.IdentityKeyPair{}, fmt.Errorf(
			"%w: %d-bit modulus is below the %d-bit minimum",
			domain.ErrIdentityGenerationFailed, bits, MinKeyBits,
		)
	}
	priv, err := p.GenerateRSAKey(bits)
	if err != nil {
		return domain.IdentityKeyPair{}, fmt.Errorf("%w: %w", domain.ErrIdentityGenerationFailed, err)
	}
	priv.Precompute()
	return domain.IdentityKeyPair{Public: &priv.PublicKey, Private: priv}, nil
}

// ExportIdentity renders both halves as JWK JSON, ready to be written to the
// key store as plain values.
func ExportIdentity(pair domain.IdentityKeyPair) (public, private []byte, err error) {
	if pair.IsZero() {
		return nil, nil, fmt.Errorf("export identity: empty key pair")
	}
	public, err = marshalPublicJWK(pair.Public)
	if err != nil {
		return nil, nil, fmt.Errorf("export public key: %w", err)
	}
	private, err = marshalPrivateJWK(pair.Private)
	if err != nil {
		return nil, nil, fmt.Errorf("export private key: %w", err)
	}
	return public, private, nil
}

// ImportIdentity rebuilds a key pair from the records written by
// ExportIdentity. The two halves must belong together.
func ImportIdentity(public, private []byte) (domain.IdentityKeyPair, error) {
	pub, err := ParsePublicKey(domain.SerializedPublicKey(public))
	if err != nil {
		return domain.IdentityKeyPair{}, err
	}
	priv, err := parsePrivateJWK(private)
	if err != nil {
		return domain.IdentityKeyPair{}, err
	}
	if !priv.PublicKey.Equal(pub) {
		return domain.IdentityKeyPair{}, fmt.Errorf("%w: stored public and private keys do not match", domain.ErrKeyImportFailed)
	}
	return domain.IdentityKeyPair{Public: pub, Private: priv}, nil
}
