package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rsa"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"spark/internal/domain"
	"spark/internal/util/memzero"
)

const (
	// SessionKeyBytes is the AES-256 session key size.
	SessionKeyBytes = 32
	// NonceBytes is the AES-GCM nonce size.
	NonceBytes = 12
)

// Cipher seals and opens envelopes.
//
// Each Encrypt call draws a new session key and nonce, so nonce reuse under a
// key cannot happen regardless of how callers behave. Cipher holds no
// per-message state and is safe for concurrent use if its reader is.
type Cipher struct {
	rand io.Reader
}

// NewCipher returns a Cipher drawing randomness from p.
func NewCipher(p domain.CryptoProvider) *Cipher {
	return &Cipher{rand: p.Reader()}
}

// EncryptFor parses the recipient's serialized key, then encrypts.
func (c *Cipher) EncryptFor(plaintext string, recipient domain.SerializedPublicKey) (domain.Envelope, error) {
	pub, err := ParsePublicKey(recipient)
	if err != nil {
		return domain.Envelope{}, err
	}
	return c.Encrypt(plaintext, pub)
}

// Encrypt seals plaintext for the holder of recipient's private key.
//
// The UTF-8 plaintext is encrypted with AES-256-GCM under a fresh session key,
// and the raw session key is wrapped with RSA-OAEP-SHA256.
func (c *Cipher) Encrypt(plaintext string, recipient *rsa.PublicKey) (domain.Envelope, error) {
	if recipient == nil {
		return domain.Envelope{}, fmt.Errorf("%w: no recipient key", domain.ErrKeyImportFailed)
	}

	sessionKey := make([]byte, SessionKeyBytes)
	defer memzero.Zero(sessionKey)
	if _, err := io.ReadFull(c.rand, sessionKey); err != nil {
		return domain.Envelope{}, domain.Errorf("encrypt", "session key: %w", err)
	}
	nonce := make([]byte, NonceBytes)
	if _, err := io.ReadFull(c.rand, nonce); err != nil {
		return domain.Envelope{}, domain.Errorf("encrypt", "nonce: %w", err)
	}

	aead, err := newGCM(sessionKey)
	if err != nil {
		return domain.Envelope{}, domain.Errorf("encrypt", "%w", err)
	}
	ct := aead.Seal(nil, nonce, []byte(plaintext), nil)

	wrapped, err := rsa.EncryptOAEP(sha256.New(), c.rand, recipient, sessionKey, nil)
	if err != nil {
		return domain.Envelope{}, domain.Errorf("encrypt", "wrap session key: %w", err)
	}

	return domain.Envelope{
		Ciphertext:        B64(ct),
		Nonce:             B64(nonce),
		WrappedSessionKey: B64(wrapped),
	}, nil
}

// Decrypt opens env with the local private key.
//
// Failure to recover the session key is ErrEnvelopeUnwrapFailed; any problem
// with the nonce or ciphertext is ErrEnvelopeAuthenticationFailed. No
// plaintext is returned alongside an error.
func (c *Cipher) Decrypt(env domain.Envelope, own *rsa.PrivateKey) (string, error) {
	if own == nil {
		return "", fmt.Errorf("%w: no private key", domain.ErrEnvelopeUnwrapFailed)
	}
	if env.WrappedSessionKey == "" {
		return "", fmt.Errorf("%w: envelope has no session key", domain.ErrEnvelopeUnwrapFailed)
	}

	wrapped, err := FromB64(env.WrappedSessionKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrEnvelopeUnwrapFailed, err)
	}
	sessionKey, err := rsa.DecryptOAEP(sha256.New(), nil, own, wrapped, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrEnvelopeUnwrapFailed, err)
	}
	defer memzero.Zero(sessionKey)
	if len(sessionKey) != SessionKeyBytes {
		return "", fmt.Errorf("%w: session key is %d bytes", domain.ErrEnvelopeUnwrapFailed, len(sessionKey))
	}

	nonce, err := FromB64(env.Nonce)
	if err != nil {
		return "", fmt.Errorf("%w: nonce: %w", domain.ErrEnvelopeAuthenticationFailed, err)
	}
	if len(nonce) != NonceBytes {
		return "", fmt.Errorf("%w: nonce is %d bytes", domain.ErrEnvelopeAuthenticationFailed, len(nonce))
	}
	ct, err := FromB64(env.Ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: ciphertext: %w", domain.ErrEnvelopeAuthenticationFailed, err)
	}

	aead, err := newGCM(sessionKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrEnvelopeUnwrapFailed, err)
	}
	pt, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrEnvelopeAuthenticationFailed, err)
	}
	if !utf8.Valid(pt) {
		memzero.Zero(pt)
		return "", fmt.Errorf("%w: plaintext is not UTF-8", domain.ErrEnvelopeAuthenticationFailed)
	}
	return string(pt), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// IsUnwrapFailure reports whether err means the envelope was not addressed to
// the current identity.
func IsUnwrapFailure(err error) bool { return errors.Is(err, domain.ErrEnvelopeUnwrapFailed) }

// IsAuthenticationFailure reports whether err means the payload was altered.
func IsAuthenticationFailure(err error) bool {
	return errors.Is(err, domain.ErrEnvelopeAuthenticationFailed)
}
