package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/lftbrito/bip-teste-integrado/internal/infrastructure/metrics"
)

func TestMetrics(t *testing.T) {
	m := metrics.New()

	m.TransfersSucceeded.Inc()
	m.TransfersFailed.WithLabelValues("version_conflict").Inc()
	m.TransfersFailed.WithLabelValues("version_conflict").Inc()
	m.TransferRetries.Inc()

	if got := testutil.ToFloat64(m.TransfersSucceeded); got != 1 {
		t.Errorf("expected 1 succeeded, got %v", got)
	}
	if got := testutil.ToFloat64(m.TransfersFailed.WithLabelValues("version_conflict")); got != 2 {
		t.Errorf("expected 2 failed with version_conflict, got %v", got)
	}
	if got := testutil.ToFloat64(m.TransfersFailed.WithLabelValues("not_found")); got != 0 {
		t.Errorf("expected 0 failed with not_found, got %v", got)
	}
	if got := testutil.ToFloat64(m.TransferRetries); got != 1 {
		t.Errorf("expected 1 retry, got %v", got)
	}
}
