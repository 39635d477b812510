package crypto_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"testing"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/stretchr/testify/require"

	"spark/internal/crypto"
	"spark/internal/domain"
)

func TestPublicKeyCodec_RoundTripEncrypts(t *testing.T) {
	id := testIdentity(t, 0)

	text, err := crypto.SerializePublicKey(id.Public)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &fields))
	require.Equal(t, "RSA", fields["kty"])
	require.Equal(t, crypto.KeyAlgorithm, fields["alg"])
	require.NotContains(t, fields, "d")

	pub, err := crypto.ParsePublicKey(text)
	require.NoError(t, err)
	require.True(t, pub.Equal(id.Public))

	c := crypto.NewCipher(crypto.SystemProvider{})
	env, err := c.Encrypt("hello", pub)
	require.NoError(t, err)
	got, err := c.Decrypt(env, id.Private)
	require.NoError(t, err)
	require.Equal(t, "hello", got)
}

func TestParsePublicKey_AcceptsWebCryptoExport(t *testing.T) {
	id := testIdentity(t, 0)
	text, err := crypto.SerializePublicKey(id.Public)
	require.NoError(t, err)

	// Browsers add key_ops and ext and may omit use.
	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &fields))
	delete(fields, "use")
	fields["key_ops"] = []string{"encrypt", "wrapKey"}
	fields["ext"] = true
	raw, err := json.Marshal(fields)
	require.NoError(t, err)

	pub, err := crypto.ParsePublicKey(domain.SerializedPublicKey(raw))
	require.NoError(t, err)
	require.True(t, pub.Equal(id.Public))
}

func TestParsePublicKey_Rejects(t *testing.T) {
	id := testIdentity(t, 0)

	privJWK, err := jose.JSONWebKey{Key: id.Private, Algorithm: crypto.KeyAlgorithm}.MarshalJSON()
	require.NoError(t, err)

	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	ecJWK, err := jose.JSONWebKey{Key: &ecKey.PublicKey}.MarshalJSON()
	require.NoError(t, err)

	small, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	smallJWK, err := jose.JSONWebKey{Key: &small.PublicKey}.MarshalJSON()
	require.NoError(t, err)

	wrongAlg, err := jose.JSONWebKey{Key: id.Public, Algorithm: "RS256"}.MarshalJSON()
	require.NoError(t, err)

	wrongUse, err := jose.JSONWebKey{Key: id.Public, Use: "sig"}.MarshalJSON()
	require.NoError(t, err)

	withField := func(key, value string) string {
		text, err := crypto.SerializePublicKey(id.Public)
		require.NoError(t, err)
		var fields map[string]any
		require.NoError(t, json.Unmarshal([]byte(text), &fields))
		fields[key] = value
		raw, err := json.Marshal(fields)
		require.NoError(t, err)
		return string(raw)
	}
	evenN := new(big.Int).Add(id.Public.N, big.NewInt(1))

	cases := map[string]string{
		"exponent one":         withField("e", "AQ"),
		"exponent two":         withField("e", "Ag"),
		"exponent padded one":  withField("e", "AAE"),
		"even exponent":        withField("e", base64.RawURLEncoding.EncodeToString([]byte{0x01, 0x00, 0x00})),
		"even modulus":         withField("n", base64.RawURLEncoding.EncodeToString(evenN.Bytes())),
		"not json":       "{not json",
		"empty":          "",
		"missing fields": `{"kty":"RSA"}`,
		"private key":    string(privJWK),
		"ec key":         string(ecJWK),
		"symmetric key":  `{"kty":"oct","k":"AAAAAAAAAAAAAAAAAAAAAA"}`,
		"small modulus":  string(smallJWK),
		"wrong alg":      string(wrongAlg),
		"wrong use":      string(wrongUse),
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			pub, err := crypto.ParsePublicKey(domain.SerializedPublicKey(text))
			require.ErrorIs(t, err, domain.ErrKeyImportFailed)
			require.Nil(t, pub)
		})
	}
}

func TestIdentity_ExportImport(t *testing.T) {
	a, b := testIdentity(t, 0), testIdentity(t, 1)

	pub, priv, err := crypto.ExportIdentity(a)
	require.NoError(t, err)

	got, err := crypto.ImportIdentity(pub, priv)
	require.NoError(t, err)
	require.True(t, got.Public.Equal(a.Public))
	require.True(t, got.Private.Equal(a.Private))

	otherPub, _, err := crypto.ExportIdentity(b)
	require.NoError(t, err)
	_, err = crypto.ImportIdentity(otherPub, priv)
	require.ErrorIs(t, err, domain.ErrKeyImportFailed)

	_, err = crypto.ImportIdentity(pub, []byte("garbage"))
	require.ErrorIs(t, err, domain.ErrKeyImportFailed)
}

func TestGenerateIdentity_Failures(t *testing.T) {
	_, err := crypto.GenerateIdentity(crypto.SystemProvider{}, 1024)
	require.ErrorIs(t, err, domain.ErrIdentityGenerationFailed)

	_, err = crypto.GenerateIdentity(brokenProvider{}, crypto.DefaultKeyBits)
	require.ErrorIs(t, err, domain.ErrIdentityGenerationFailed)
	require.ErrorIs(t, err, errNoEntropy)
}

func TestFingerprint_StableAndDistinct(t *testing.T) {
	a, b := testIdentity(t, 0), testIdentity(t, 1)

	fa1, err := crypto.Fingerprint(a.Public)
	require.NoError(t, err)
	fa2, err := crypto.Fingerprint(a.Public)
	require.NoError(t, err)
	fb, err := crypto.Fingerprint(b.Public)
	require.NoError(t, err)

	require.Len(t, fa1.String(), 20)
	require.Equal(t, fa1, fa2)
	require.NotEqual(t, fa1, fb)
}
