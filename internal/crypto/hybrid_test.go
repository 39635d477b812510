package crypto_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"spark/internal/crypto"
	"spark/internal/domain"
)

func TestCipher_RoundTrip(t *testing.T) {
	id := testIdentity(t, 0)
	c := crypto.NewCipher(crypto.SystemProvider{})

	for _, pt := range []string{"", "hello", "secret message", "héllo wörld 👋", string(make([]byte, 64<<10))} {
		env, err := c.Encrypt(pt, id.Public)
		require.NoError(t, err)
		require.NotEmpty(t, env.WrappedSessionKey)

		got, err := c.Decrypt(env, id.Private)
		require.NoError(t, err)
		require.Equal(t, pt, got)
	}
}

func TestCipher_WrongRecipientFailsUnwrap(t *testing.T) {
	a, b := testIdentity(t, 0), testIdentity(t, 1)
	c := crypto.NewCipher(crypto.SystemProvider{})

	env, err := c.Encrypt("hello", a.Public)
	require.NoError(t, err)

	got, err := c.Decrypt(env, b.Private)
	require.ErrorIs(t, err, domain.ErrEnvelopeUnwrapFailed)
	require.NotErrorIs(t, err, domain.ErrEnvelopeAuthenticationFailed)
	require.Empty(t, got)
	require.True(t, crypto.IsUnwrapFailure(err))
}

func TestCipher_CorruptLastCiphertextCharFailsAuth(t *testing.T) {
	id := testIdentity(t, 0)
	c := crypto.NewCipher(crypto.SystemProvider{})

	env, err := c.Encrypt("secret message", id.Public)
	require.NoError(t, err)

	last := env.Ciphertext[len(env.Ciphertext)-1]
	repl := byte('A')
	if last == 'A' {
		repl = 'B'
	}
	env.Ciphertext = env.Ciphertext[:len(env.Ciphertext)-1] + string(repl)

	got, err := c.Decrypt(env, id.Private)
	require.ErrorIs(t, err, domain.ErrEnvelopeAuthenticationFailed)
	require.Empty(t, got)
	require.True(t, crypto.IsAuthenticationFailure(err))
}

func TestCipher_AnyFlippedByteFailsAuth(t *testing.T) {
	id := testIdentity(t, 0)
	c := crypto.NewCipher(crypto.SystemProvider{})

	env, err := c.Encrypt("tamper me", id.Public)
	require.NoError(t, err)

	flip := func(field string, i int) string {
		b, err := crypto.FromB64(field)
		require.NoError(t, err)
		b[i] ^= 0x01
		return crypto.B64(b)
	}

	ct, err := crypto.FromB64(env.Ciphertext)
	require.NoError(t, err)
	for i := range ct {
		bad := env
		bad.Ciphertext = flip(env.Ciphertext, i)
		_, err := c.Decrypt(bad, id.Private)
		require.ErrorIs(t, err, domain.ErrEnvelopeAuthenticationFailed, "ciphertext byte %d", i)
	}
	for i := 0; i < crypto.NonceBytes; i++ {
		bad := env
		bad.Nonce = flip(env.Nonce, i)
		_, err := c.Decrypt(bad, id.Private)
		require.ErrorIs(t, err, domain.ErrEnvelopeAuthenticationFailed, "nonce byte %d", i)
	}
}

func TestCipher_FreshNonceAndKeyPerMessage(t *testing.T) {
	id := testIdentity(t, 0)
	c := crypto.NewCipher(crypto.SystemProvider{})

	e1, err := c.Encrypt("same text", id.Public)
	require.NoError(t, err)
	e2, err := c.Encrypt("same text", id.Public)
	require.NoError(t, err)

	require.NotEqual(t, e1.Nonce, e2.Nonce)
	require.NotEqual(t, e1.WrappedSessionKey, e2.WrappedSessionKey)
	require.NotEqual(t, e1.Ciphertext, e2.Ciphertext)
}

func TestCipher_MalformedEnvelopes(t *testing.T) {
	id := testIdentity(t, 0)
	c := crypto.NewCipher(crypto.SystemProvider{})
	env, err := c.Encrypt("hello", id.Public)
	require.NoError(t, err)

	noKey := env
	noKey.WrappedSessionKey = ""
	_, err = c.Decrypt(noKey, id.Private)
	require.ErrorIs(t, err, domain.ErrEnvelopeUnwrapFailed)

	badKey := env
	badKey.WrappedSessionKey = "!!not base64!!"
	_, err = c.Decrypt(badKey, id.Private)
	require.ErrorIs(t, err, domain.ErrEnvelopeUnwrapFailed)

	shortNonce := env
	shortNonce.Nonce = crypto.B64([]byte("short"))
	_, err = c.Decrypt(shortNonce, id.Private)
	require.ErrorIs(t, err, domain.ErrEnvelopeAuthenticationFailed)

	badCT := env
	badCT.Ciphertext = "%%%"
	_, err = c.Decrypt(badCT, id.Private)
	require.ErrorIs(t, err, domain.ErrEnvelopeAuthenticationFailed)
}

func TestCipher_EncryptForParsesRecipient(t *testing.T) {
	id := testIdentity(t, 0)
	c := crypto.NewCipher(crypto.SystemProvider{})

	text, err := crypto.SerializePublicKey(id.Public)
	require.NoError(t, err)

	env, err := c.EncryptFor("via codec", text)
	require.NoError(t, err)
	got, err := c.Decrypt(env, id.Private)
	require.NoError(t, err)
	require.Equal(t, "via codec", got)

	_, err = c.EncryptFor("x", "not json")
	require.ErrorIs(t, err, domain.ErrKeyImportFailed)
}

func TestCipher_NoEntropyFailsEncrypt(t *testing.T) {
	id := testIdentity(t, 0)
	c := crypto.NewCipher(brokenProvider{})

	_, err := c.Encrypt("hello", id.Public)
	require.ErrorIs(t, err, errNoEntropy)

	var opErr *domain.OpError
	require.ErrorAs(t, err, &opErr)
	require.Equal(t, "encrypt", opErr.Op)
}
