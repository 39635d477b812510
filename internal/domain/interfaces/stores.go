package interfaces

import (
	"context"

	datastore "github.com/ipfs/go-datastore"

	domaintypes "spark/internal/domain/types"
)

// KeyValueStore is the storage capability the key store is built on. Any
// batching go-datastore works: LevelDB on disk, a mutex-wrapped map in tests.
type KeyValueStore = datastore.Batching

// KeyStore persists the two identity records (pub, priv).
//
// Material passed to Put and PutPair must already be fully exported; the
// store performs no other work while its write is open.
type KeyStore interface {
	// Get returns stored material, ErrKeyNotFound for an empty slot, or
	// ErrStorageUnavailable for any backend fault.
	Get(ctx context.Context, slot domaintypes.Slot) ([]byte, error)
	Put(ctx context.Context, slot domaintypes.Slot, material []byte) error
	// PutPair writes both slots atomically.
	PutPair(ctx context.Context, public, private []byte) error
	// Clear removes both slots.
	Clear(ctx context.Context) error
}
