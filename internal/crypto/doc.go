// Package crypto exposes the primitives behind Spark's end-to-end encryption.
//
// Contents
//
//   - RSA-OAEP identity generation, export and import (GenerateIdentity,
//     ExportIdentity, ImportIdentity)
//   - The public key codec: JWK text to and from *rsa.PublicKey
//     (SerializePublicKey, ParsePublicKey)
//   - The hybrid cipher: a fresh AES-256-GCM session key per message, wrapped
//     with RSA-OAEP-SHA256 under the recipient's key (Cipher)
//   - The system CryptoProvider backed by crypto/rand (SystemProvider)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Randomness always comes from an injected domain.CryptoProvider. Session keys
// are wiped once a message is sealed or opened; callers should treat returned
// plaintext as sensitive.
package crypto
