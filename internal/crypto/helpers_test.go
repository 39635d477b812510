package crypto_test

import (
	"crypto/rsa"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"spark/internal/crypto"
	"spark/internal/domain"
)

var (
	keysOnce sync.Once
	keys     [2]domain.IdentityKeyPair
	keysErr  error
)

// testIdentity returns one of two fixed identities, generated once per run.
func testIdentity(t *testing.T, i int) domain.IdentityKeyPair {
	t.Helper()
	keysOnce.Do(func() {
		for n := range keys {
			keys[n], keysErr = crypto.GenerateIdentity(crypto.SystemProvider{}, crypto.DefaultKeyBits)
			if keysErr != nil {
				return
			}
		}
	})
	require.NoError(t, keysErr)
	return keys[i]
}

var errNoEntropy = errors.New("entropy source unavailable")

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errNoEntropy }

// brokenProvider has no usable randomness or key generation.
type brokenProvider struct{}

func (brokenProvider) Reader() io.Reader { return failingReader{} }

func (brokenProvider) GenerateRSAKey(int) (*rsa.PrivateKey, error) { return nil, errNoEntropy }
