package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transfer metrics
	TransfersSucceeded prometheus.Counter
	TransfersFailed    *prometheus.CounterVec
	TransferDuration   prometheus.Histogram
	TransferAmount     prometheus.Histogram
	TransferRetries    prometheus.Counter
	LockTimeouts       prometheus.Counter

	// Benefit metrics
	BenefitsCreated     prometheus.Counter
	BenefitsDeactivated prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransfersSucceeded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bip_transfers_succeeded_total",
			Help: "Total number of completed transfers",
		}),
		TransfersFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bip_transfers_failed_total",
				Help: "Total number of failed transfers by failure kind",
			},
			[]string{"kind"},
		),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bip_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bip_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransferRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bip_transfer_retries_total",
			Help: "Total number of optimistic transfer attempts retried after a version conflict",
		}),
		LockTimeouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bip_transfer_lock_timeouts_total",
			Help: "Total number of transfers that timed out waiting for a benefit lock",
		}),
		BenefitsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bip_benefits_created_total",
			Help: "Total number of benefits created",
		}),
		BenefitsDeactivated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bip_benefits_deactivated_total",
			Help: "Total number of benefits soft-deleted",
		}),
	}
}
