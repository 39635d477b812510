package store

import (
	"fmt"
	"os"
	"path/filepath"

	datastore "github.com/ipfs/go-datastore"
	dssync "github.com/ipfs/go-datastore/sync"
	leveldb "github.com/ipfs/go-ds-leveldb"

	"spark/internal/domain"
)

// OpenLevelDB opens (creating if needed) the LevelDB database named database
// under dir. LevelDB holds an exclusive lock, so a second process opening the
// same database gets ErrStorageUnavailable.
func OpenLevelDB(dir, database string) (domain.KeyValueStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	path := filepath.Join(dir, database)
	db, err := leveldb.NewDatastore(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrStorageUnavailable, path, err)
	}
	log.Debugw("opened key database", "path", path)
	return db, nil
}

// NewMemoryBackend returns a concurrency-safe in-memory datastore.
func NewMemoryBackend() domain.KeyValueStore {
	return dssync.MutexWrap(datastore.NewMapDatastore())
}
