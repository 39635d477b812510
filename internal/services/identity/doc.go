// Package identity loads the local RSA-OAEP identity from the key store, or
// generates and persists one on first use.
//
// Concurrent first-run callers in one process share a single generation, so
// the store never ends up holding two different identities.
package identity
