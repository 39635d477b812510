package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"io"

	"spark/internal/domain"
)

// SystemProvider draws randomness from the operating system CSPRNG.
type SystemProvider struct{}

// Reader returns crypto/rand.Reader.
func (SystemProvider) Reader() io.Reader { return rand.Reader }

// GenerateRSAKey returns a fresh RSA key with public exponent 65537.
func (SystemProvider) GenerateRSAKey(bits int) (*rsa.PrivateKey, error) {
	return rsa.GenerateKey(rand.Reader, bits)
}

// Compile-time assertion that SystemProvider implements domain.CryptoProvider.
var _ domain.CryptoProvider = SystemProvider{}
