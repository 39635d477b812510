package identity

import (
	"context"
	"errors"
	"fmt"

	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/sync/singleflight"

	"spark/internal/crypto"
	"spark/internal/domain"
	"spark/internal/metrics"
)

var log = logging.Logger("spark/identity")

const obtainKey = "identity"

// errAbsent means the store holds no usable identity and one must be created.
var errAbsent = errors.New("no stored identity")

// Service manages the local identity key pair.
type Service struct {
	store    domain.KeyStore
	provider domain.CryptoProvider
	bits     int
	metrics  *metrics.Collector

	group singleflight.Group
}

// Option configures a Service.
type Option func(*Service)

// WithKeyBits sets the modulus size for newly generated identities.
func WithKeyBits(bits int) Option {
	return func(s *Service) { s.bits = bits }
}

// WithMetrics records ObtainIdentity outcomes on m.
func WithMetrics(m *metrics.Collector) Option {
	return func(s *Service) { s.metrics = m }
}

// New returns an identity service backed by store.
func New(store domain.KeyStore, provider domain.CryptoProvider, opts ...Option) *Service {
	s := &Service{store: store, provider: provider, bits: crypto.DefaultKeyBits}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ObtainIdentity returns the persisted identity, creating and persisting one
// if the store is empty.
//
// Every failure wraps ErrIdentityInitFailed together with its cause. Once
// generation has started it runs to completion even if ctx is cancelled, so
// a cancelled caller cannot leave a half-written store behind.
func (s *Service) ObtainIdentity(ctx context.Context) (domain.IdentityKeyPair, error) {
	ch := s.group.DoChan(obtainKey, func() (any, error) {
		return s.obtain(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return domain.IdentityKeyPair{}, fmt.Errorf("%w: %w", domain.ErrIdentityInitFailed, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return domain.IdentityKeyPair{}, res.Err
		}
		return res.Val.(domain.IdentityKeyPair), nil
	}
}

func (s *Service) obtain(ctx context.Context) (domain.IdentityKeyPair, error) {
	pair, err := s.load(ctx)
	if err == nil {
		s.metrics.ObserveIdentity(metrics.IdentityLoaded)
		return pair, nil
	}
	if !errors.Is(err, errAbsent) {
		return s.fail(err)
	}

	pair, err = crypto.GenerateIdentity(s.provider, s.bits)
	if err != nil {
		return s.fail(err)
	}
	// Both records must be plain bytes before the store opens its batch.
	public, private, err := crypto.ExportIdentity(pair)
	if err != nil {
		return s.fail(fmt.Errorf("%w: %w", domain.ErrIdentityGenerationFailed, err))
	}
	if err := s.store.PutPair(ctx, public, private); err != nil {
		return s.fail(err)
	}

	s.metrics.ObserveIdentity(metrics.IdentityGenerated)
	if fp, err := crypto.Fingerprint(pair.Public); err == nil {
		log.Infow("generated new identity", "fingerprint", fp, "bits", s.bits)
	}
	return pair, nil
}

// load reads both slots. It returns errAbsent when generation should happen
// and ErrStorageUnavailable for anything that must not be overwritten.
func (s *Service) load(ctx context.Context) (domain.IdentityKeyPair, error) {
	public, pubErr := s.store.Get(ctx, domain.SlotPublic)
	if pubErr != nil && !errors.Is(pubErr, domain.ErrKeyNotFound) {
		return domain.IdentityKeyPair{}, pubErr
	}
	private, privErr := s.store.Get(ctx, domain.SlotPrivate)
	if privErr != nil && !errors.Is(privErr, domain.ErrKeyNotFound) {
		return domain.IdentityKeyPair{}, privErr
	}

	switch {
	case pubErr != nil && privErr != nil:
		return domain.IdentityKeyPair{}, errAbsent
	case pubErr != nil:
		log.Warnw("stored identity is missing a record; regenerating", "missing", domain.SlotPublic)
		return domain.IdentityKeyPair{}, errAbsent
	case privErr != nil:
		log.Warnw("stored identity is missing a record; regenerating", "missing", domain.SlotPrivate)
		return domain.IdentityKeyPair{}, errAbsent
	}

	pair, err := crypto.ImportIdentity(public, private)
	if err != nil {
		return domain.IdentityKeyPair{}, fmt.Errorf("%w: stored identity: %w", domain.ErrStorageUnavailable, err)
	}
	log.Debug("loaded stored identity")
	return pair, nil
}

func (s *Service) fail(err error) (domain.IdentityKeyPair, error) {
	s.metrics.ObserveIdentity(metrics.Result(err))
	log.Warnw("obtain identity failed", "err", err)
	return domain.IdentityKeyPair{}, fmt.Errorf("%w: %w", domain.ErrIdentityInitFailed, err)
}

// PublicKey returns the identity's public key as JWK text, ready to publish.
func (s *Service) PublicKey(ctx context.Context) (domain.SerializedPublicKey, error) {
	pair, err := s.ObtainIdentity(ctx)
	if err != nil {
		return "", err
	}
	return crypto.SerializePublicKey(pair.Public)
}

// Fingerprint returns a short fingerprint of the identity's public key.
func (s *Service) Fingerprint(ctx context.Context) (domain.Fingerprint, error) {
	pair, err := s.ObtainIdentity(ctx)
	if err != nil {
		return "", err
	}
	return crypto.Fingerprint(pair.Public)
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
