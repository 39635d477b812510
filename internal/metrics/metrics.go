// Package metrics counts identity and envelope outcomes with Prometheus.
//
// A nil *Collector is valid and records nothing.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"spark/internal/domain"
)

// Identity results.
const (
	IdentityLoaded    = "loaded"
	IdentityGenerated = "generated"
)

// Envelope operations.
const (
	OpSeal = "seal"
	OpOpen = "open"
)

// Collector holds the counters.
type Collector struct {
	identity  *prometheus.CounterVec
	envelopes *prometheus.CounterVec
}

// New registers the counters with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		identity: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spark",
			Name:      "identity_obtain_total",
			Help:      "ObtainIdentity calls by result.",
		}, []string{"result"}),
		envelopes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spark",
			Name:      "envelope_operations_total",
			Help:      "Envelope seal/open operations by result.",
		}, []string{"op", "result"}),
	}
	reg.MustRegister(c.identity, c.envelopes)
	return c
}

// ObserveIdentity counts one ObtainIdentity outcome.
func (c *Collector) ObserveIdentity(result string) {
	if c == nil {
		return
	}
	c.identity.WithLabelValues(result).Inc()
}

// ObserveEnvelope counts one seal or open, labelled by Result(err).
func (c *Collector) ObserveEnvelope(op string, err error) {
	if c == nil {
		return
	}
	c.envelopes.WithLabelValues(op, Result(err)).Inc()
}

// IdentityCounter exposes the identity counter for result.
func (c *Collector) IdentityCounter(result string) prometheus.Counter {
	return c.identity.WithLabelValues(result)
}

// EnvelopeCounter exposes the envelope counter for op and result.
func (c *Collector) EnvelopeCounter(op, result string) prometheus.Counter {
	return c.envelopes.WithLabelValues(op, result)
}

// Result maps an error to its metric label.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	// Local identity faults first: a corrupt store also carries the import
	// error of the record it could not read.
	case errors.Is(err, domain.ErrStorageUnavailable):
		return "storage_unavailable"
	case errors.Is(err, domain.ErrIdentityGenerationFailed):
		return "generation_failed"
	case errors.Is(err, domain.ErrIdentityInitFailed):
		return "identity_init_failed"
	case errors.Is(err, domain.ErrKeyImportFailed):
		return "key_import_failed"
	case errors.Is(err, domain.ErrEnvelopeUnwrapFailed):
		return "unwrap_failed"
	case errors.Is(err, domain.ErrEnvelopeAuthenticationFailed):
		return "authentication_failed"
	default:
		return "error"
	}
}
