package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	datastore "github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/namespace"
	logging "github.com/ipfs/go-log/v2"

	"spark/internal/crypto"
	"spark/internal/domain"
)

var log = logging.Logger("spark/store")

// DefaultStoreName is the namespace holding the identity records.
const DefaultStoreName = "IdentityKeys"

// KeyStore persists the identity's pub and priv records.
type KeyStore struct {
	ds         datastore.Batching
	passphrase string
	kdf        scryptParams
	rand       io.Reader

	closeOnce sync.Once
	closeErr  error
}

// Option configures a KeyStore.
type Option func(*KeyStore)

// WithPassphrase seals the private record at rest with passphrase.
func WithPassphrase(passphrase string) Option {
	return func(s *KeyStore) { s.passphrase = passphrase }
}

// WithRandom sets the randomness source used for sealing salts.
func WithRandom(r io.Reader) Option {
	return func(s *KeyStore) { s.rand = r }
}

// New returns a KeyStore keeping its records under /<store> in backend. The
// KeyStore takes ownership of backend and closes it on Close.
func New(backend domain.KeyValueStore, store string, opts ...Option) *KeyStore {
	if store == "" {
		store = DefaultStoreName
	}
	s := &KeyStore{
		ds:   namespace.Wrap(backend, datastore.NewKey(store)),
		kdf:  scryptParamsDefault(),
		rand: crypto.SystemProvider{}.Reader(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the material stored in slot.
func (s *KeyStore) Get(ctx context.Context, slot domain.Slot) ([]byte, error) {
	v, err := s.ds.Get(ctx, slotKey(slot))
	if errors.Is(err, datastore.ErrNotFound) || (err == nil && len(v) == 0) {
		return nil, fmt.Errorf("slot %q: %w", slot, domain.ErrKeyNotFound)
	}
	if err != nil {
		return nil, unavailable("get", slot, err)
	}
	if slot == domain.SlotPrivate && s.passphrase != "" {
		v, err = open(s.passphrase, v)
		if err != nil {
			return nil, unavailable("get", slot, err)
		}
	}
	return v, nil
}

// Put writes material to slot.
func (s *KeyStore) Put(ctx context.Context, slot domain.Slot, material []byte) error {
	if len(material) == 0 {
		return fmt.Errorf("put %q: empty key material", slot)
	}
	v, err := s.encode(slot, material)
	if err != nil {
		return err
	}
	if err := s.ds.Put(ctx, slotKey(slot), v); err != nil {
		return unavailable("put", slot, err)
	}
	if err := s.ds.Sync(ctx, slotKey(slot)); err != nil {
		return unavailable("sync", slot, err)
	}
	return nil
}

// PutPair writes both records in a single batch.
func (s *KeyStore) PutPair(ctx context.Context, public, private []byte) error {
	if len(public) == 0 || len(private) == 0 {
		return errors.New("put pair: empty key material")
	}
	// Sealing runs scrypt; finish it before the batch exists.
	priv, err := s.encode(domain.SlotPrivate, private)
	if err != nil {
		return err
	}

	b, err := s.ds.Batch(ctx)
	if err != nil {
		return unavailable("batch", "", err)
	}
	if err := b.Put(ctx, slotKey(domain.SlotPublic), public); err != nil {
		return unavailable("put", domain.SlotPublic, err)
	}
	if err := b.Put(ctx, slotKey(domain.SlotPrivate), priv); err != nil {
		return unavailable("put", domain.SlotPrivate, err)
	}
	if err := b.Commit(ctx); err != nil {
		return unavailable("commit", "", err)
	}
	if err := s.ds.Sync(ctx, datastore.NewKey("/")); err != nil {
		return unavailable("sync", "", err)
	}
	log.Debug("identity records written")
	return nil
}

// Clear deletes both records in a single batch. Clearing an empty store is
// not an error.
func (s *KeyStore) Clear(ctx context.Context) error {
	b, err := s.ds.Batch(ctx)
	if err != nil {
		return unavailable("batch", "", err)
	}
	for _, slot := range []domain.Slot{domain.SlotPublic, domain.SlotPrivate} {
		if err := b.Delete(ctx, slotKey(slot)); err != nil {
			return unavailable("delete", slot, err)
		}
	}
	if err := b.Commit(ctx); err != nil {
		return unavailable("commit", "", err)
	}
	if err := s.ds.Sync(ctx, datastore.NewKey("/")); err != nil {
		return unavailable("sync", "", err)
	}
	log.Info("identity records cleared")
	return nil
}

// Close releases the underlying datastore.
func (s *KeyStore) Close() error {
	s.closeOnce.Do(func() { s.closeErr = s.ds.Close() })
	return s.closeErr
}

func (s *KeyStore) encode(slot domain.Slot, material []byte) ([]byte, error) {
	if slot != domain.SlotPrivate || s.passphrase == "" {
		return material, nil
	}
	v, err := seal(s.rand, s.passphrase, material, s.kdf)
	if err != nil {
		return nil, fmt.Errorf("seal %q: %w", slot, err)
	}
	return v, nil
}

func slotKey(slot domain.Slot) datastore.Key { return datastore.NewKey(slot.String()) }

func unavailable(op string, slot domain.Slot, err error) error {
	if slot != "" {
		op = fmt.Sprintf("%s %q", op, slot)
	}
	return &domain.OpError{Op: "keystore " + op, Err: fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)}
}

// Compile-time assertion that KeyStore implements domain.KeyStore.
var _ domain.KeyStore = (*KeyStore)(nil)
