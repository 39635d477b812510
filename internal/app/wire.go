package app

import (
	logging "github.com/ipfs/go-log/v2"
	"github.com/prometheus/client_golang/prometheus"

	"spark/internal/crypto"
	"spark/internal/metrics"
	identitysvc "spark/internal/services/identity"
	messagesvc "spark/internal/services/message"
	"spark/internal/store"
)

var log = logging.Logger("spark/app")

// Wire bundles the store, services and metrics registry for the CLI.
type Wire struct {
	Store    *store.KeyStore
	Identity *identitysvc.Service
	Messages *messagesvc.Service
	Registry *prometheus.Registry
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var opts []store.Option
	if p := cfg.ResolvePassphrase(); p != "" {
		if err := store.CheckPassphrase(p); err != nil {
			return nil, err
		}
		opts = append(opts, store.WithPassphrase(p))
	}
	backend, err := store.OpenLevelDB(cfg.Home, cfg.Database)
	if err != nil {
		return nil, err
	}
	ks := store.New(backend, cfg.Store, opts...)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	provider := crypto.SystemProvider{}

	ids := identitysvc.New(ks, provider,
		identitysvc.WithKeyBits(cfg.KeyBits),
		identitysvc.WithMetrics(m),
	)
	log.Debugw("wired", "home", cfg.Home, "database", cfg.Database, "store", cfg.Store, "sealed", len(opts) > 0)

	return &Wire{
		Store:    ks,
		Identity: ids,
		Messages: messagesvc.New(ids, crypto.NewCipher(provider), m),
		Registry: reg,
	}, nil
}

// Close releases the key store.
func (w *Wire) Close() error {
	return w.Store.Close()
}
