package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transfer metrics
	TransfersCreated  prometheus.Counter
	TransfersReversed prometheus.Counter
	TransferAmount    prometheus.Histogram
	TransferErrors    *prometheus.CounterVec

	// User metrics
	UsersRegistered prometheus.Counter
	AuthFailures    prometheus.Counter

	// Retry metrics
	RetryExhaustions prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_transfers_created_total",
			Help: "Total number of transfers created",
		}),
		TransfersReversed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_transfers_reversed_total",
			Help: "Total number of transfers reversed",
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gowallet_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
		}),
		TransferErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_transfer_errors_total",
				Help: "Total number of transfer errors by type",
			},
			[]string{"error_type"},
		),
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_users_registered_total",
			Help: "Total number of users registered",
		}),
		AuthFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_auth_failures_total",
			Help: "Total number of failed login attempts",
		}),
		RetryExhaustions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_retry_exhaustions_total",
			Help: "Total number of operations that exhausted their conflict retries",
		}),
	}
}
