// Package metrics exposes the benchmark driver's per-phase timings as
// Prometheus series, for a run that watches itself over time rather than
// just reading the final CSV.
package metrics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus series a single driver process updates as
// it runs rounds.
type Metrics struct {
	phaseDuration     *prometheus.HistogramVec
	roundsTotal       *prometheus.CounterVec
	foundCount        *prometheus.GaugeVec
	heightAfterInsert *prometheus.GaugeVec
}

// New creates and registers the driver's metrics.
func New() *Metrics {
	return &Metrics{
		phaseDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "intsetbench_phase_duration_seconds",
				Help:    "Duration of an insert/search/delete phase.",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
			},
			[]string{"impl", "phase"},
		),
		roundsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intsetbench_rounds_total",
				Help: "Total number of completed benchmark rounds.",
			},
			[]string{"impl"},
		),
		foundCount: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "intsetbench_found_count",
				Help: "Number of search keys found in the last round.",
			},
			[]string{"impl"},
		),
		heightAfterInsert: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "intsetbench_height_after_insert",
				Help: "Tree height after the insert phase of the last round.",
			},
			[]string{"impl"},
		),
	}
}

// RecordPhase records one phase's wall-clock duration for impl.
func (m *Metrics) RecordPhase(impl, phase string, d time.Duration) {
	m.phaseDuration.WithLabelValues(impl, phase).Observe(d.Seconds())
}

// RecordRound records a completed round's found count and post-insert
// height for impl.
func (m *Metrics) RecordRound(impl string, found, heightAfterInsert int) {
	m.roundsTotal.WithLabelValues(impl).Inc()
	m.foundCount.WithLabelValues(impl).Set(float64(found))
	m.heightAfterInsert.WithLabelValues(impl).Set(float64(heightAfterInsert))
}

// Serve starts a /metrics endpoint on addr and blocks until the server
// exits; it has no shutdown hook. Run it in a goroutine.
func Serve(addr string) error {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, r)
}
