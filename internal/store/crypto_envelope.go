package store

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"spark/internal/domain"
	"spark/internal/util/memzero"
)

const (
	// The current supported version of the sealed record format.
	sealedFormatVersion = 1
	saltBytes           = 16

	// Upper bounds on stored KDF tunables; scrypt needs 128*N*r bytes.
	maxScryptN  = 1 << 20
	maxScryptRP = 64
)

// sealedRecord is the JSON structure stored in the private slot when a
// passphrase is configured.
type sealedRecord struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// scryptParams are the key derivation tunables.
type scryptParams struct{ N, R, P int }

func scryptParamsDefault() scryptParams { return scryptParams{N: 1 << 15, R: 8, P: 1} }

func validParams(k scryptParams) bool {
	return k.N > 1 && k.N <= maxScryptN && k.N&(k.N-1) == 0 &&
		k.R > 0 && k.P > 0 && k.R*k.P <= maxScryptRP
}

// seal derives a key from passphrase and seals raw into a JSON record.
func seal(rand io.Reader, passphrase string, raw []byte, kdf scryptParams) ([]byte, error) {
	salt := make([]byte, saltBytes)
	if _, err := io.ReadFull(rand, salt); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt, kdf.N, kdf.R, kdf.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize()) // zero nonce; the salt makes every key single-use
	ct := aead.Seal(nil, nonce, raw, salt)

	return json.Marshal(sealedRecord{
		V:      sealedFormatVersion,
		Salt:   salt,
		N:      kdf.N,
		R:      kdf.R,
		P:      kdf.P,
		Cipher: ct,
	})
}

// open reverses seal. A wrong passphrase, a tampered record or a record that
// was never sealed all yield ErrWrongPassphrase.
func open(passphrase string, b []byte) ([]byte, error) {
	var rec sealedRecord
	if err := json.Unmarshal(b, &rec); err != nil || rec.V == 0 || len(rec.Salt) != saltBytes {
		return nil, domain.ErrWrongPassphrase
	}
	if rec.V > sealedFormatVersion {
		return nil, fmt.Errorf("unsupported sealed record version %d", rec.V)
	}
	if !validParams(scryptParams{N: rec.N, R: rec.R, P: rec.P}) {
		return nil, fmt.Errorf("%w: scrypt parameters out of range", domain.ErrWrongPassphrase)
	}

	key, err := scrypt.Key([]byte(passphrase), rec.Salt, rec.N, rec.R, rec.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrWrongPassphrase, err)
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	pt, err := aead.Open(nil, nonce, rec.Cipher, rec.Salt)
	if err != nil {
		return nil, domain.ErrWrongPassphrase
	}
	return pt, nil
}
