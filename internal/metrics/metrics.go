// Package metrics exposes Prometheus collectors for settlement requests.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for settleup_settlements_total.
const (
	OutcomeSettled  = "settled"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics holds the settlement collectors.
type Metrics struct {
	settlements        *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	transfers          prometheus.Histogram
	duration           prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		settlements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "settleup",
			Name:      "settlements_total",
			Help:      "Settlement computations by outcome.",
		}, []string{"outcome"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "settleup",
			Name:      "validation_failures_total",
			Help:      "Rejected ledgers by error kind.",
		}, []string{"kind"}),
		transfers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "settleup",
			Name:      "transfers_per_settlement",
			Help:      "Number of transfers produced by one settlement.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21, 34},
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "settleup",
			Name:      "settle_duration_seconds",
			Help:      "Time spent validating and settling one ledger.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}
	reg.MustRegister(m.settlements, m.validationFailures, m.transfers, m.duration)
	return m
}

// ObserveSettled records a successful computation.
func (m *Metrics) ObserveSettled(transfers int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.settlements.WithLabelValues(OutcomeSettled).Inc()
	m.transfers.Observe(float64(transfers))
	m.duration.Observe(elapsed.Seconds())
}

// ObserveRejected records a ledger rejected by validation.
func (m *Metrics) ObserveRejected(kind string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.settlements.WithLabelValues(OutcomeRejected).Inc()
	m.validationFailures.WithLabelValues(kind).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// ObserveError records an internal failure.
func (m *Metrics) ObserveError(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.settlements.WithLabelValues(OutcomeError).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// Handler serves the collectors registered with g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
