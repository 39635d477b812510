package metrics_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"spark/internal/domain"
	"spark/internal/metrics"
)

func TestResult(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{fmt.Errorf("parse: %w", domain.ErrKeyImportFailed), "key_import_failed"},
		{domain.ErrEnvelopeUnwrapFailed, "unwrap_failed"},
		{domain.ErrEnvelopeAuthenticationFailed, "authentication_failed"},
		{fmt.Errorf("%w: %w", domain.ErrIdentityInitFailed, domain.ErrStorageUnavailable), "storage_unavailable"},
		{domain.ErrIdentityGenerationFailed, "generation_failed"},
		{fmt.Errorf("%w: %w: %w", domain.ErrIdentityInitFailed, domain.ErrStorageUnavailable, domain.ErrKeyImportFailed), "storage_unavailable"},
		{fmt.Errorf("%w: %w", domain.ErrIdentityInitFailed, context.Canceled), "identity_init_failed"},
		{errors.New("other"), "error"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, metrics.Result(tc.err), "%v", tc.err)
	}
}

func TestCollector_CountsAndSnapshot(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.New(reg)

	c.ObserveIdentity(metrics.IdentityGenerated)
	c.ObserveEnvelope(metrics.OpSeal, nil)
	c.ObserveEnvelope(metrics.OpOpen, domain.ErrEnvelopeUnwrapFailed)
	c.ObserveEnvelope(metrics.OpOpen, domain.ErrEnvelopeUnwrapFailed)

	require.Equal(t, 1.0, testutil.ToFloat64(c.IdentityCounter(metrics.IdentityGenerated)))
	require.Equal(t, 2.0, testutil.ToFloat64(c.EnvelopeCounter(metrics.OpOpen, "unwrap_failed")))

	snap, err := metrics.Snapshot(reg)
	require.NoError(t, err)
	require.Equal(t, 2.0, snap["spark_envelope_operations_total{op=open,result=unwrap_failed}"])
	require.Equal(t, 1.0, snap["spark_identity_obtain_total{result=generated}"])
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *metrics.Collector
	c.ObserveIdentity(metrics.IdentityLoaded)
	c.ObserveEnvelope(metrics.OpSeal, nil)
}
