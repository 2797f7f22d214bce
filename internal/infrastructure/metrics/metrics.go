package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the transfer Prometheus metrics.
type Metrics struct {
	TransfersSucceeded prometheus.Counter
	TransfersFailed    prometheus.Counter
	Compensations      prometheus.Counter
	CompensationLosses prometheus.Counter
	TransferAmount     prometheus.Histogram
}

// New creates and registers all Prometheus metrics. Call once per process.
func New() *Metrics {
	return &Metrics{
		TransfersSucceeded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_transfers_succeeded_total",
			Help: "Total number of transfers with both legs applied",
		}),
		TransfersFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_transfers_failed_total",
			Help: "Total number of transfers that failed reconciliation",
		}),
		Compensations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_compensations_total",
			Help: "Total number of compensating corrections issued",
		}),
		CompensationLosses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_compensation_losses_total",
			Help: "Total number of compensations that could not be applied",
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gobank_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
	}
}
