// Package store provides durable persistence for the local identity keys.
//
// KeyStore keeps exactly two records, pub and priv, under one namespace of a
// go-datastore. Production code opens a LevelDB database (OpenLevelDB); tests
// use an in-memory map (NewMemoryBackend). Both records are written in a
// single batch so a crash can never leave half an identity behind.
//
// Values handed to the store are already-exported bytes. Nothing but
// datastore calls happens between opening and committing a batch.
//
// When a passphrase is configured, the private record is sealed at rest with
// scrypt and ChaCha20-Poly1305 before the batch is opened.
package store
