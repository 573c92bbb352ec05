// Package metrics exposes the prometheus collectors recorded by the explorer service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeWarning = "warning"
	OutcomeError   = "error"
)

// Registry owns the collectors for one process. A nil *Registry records nothing.
type Registry struct {
	reg        *prometheus.Registry
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	rows       prometheus.Gauge
}

// NewRegistry creates a registry with the operation collectors and the go/process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gobi_operations_total",
			Help: "Explorer operations by outcome.",
		}, []string{"operation", "outcome"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gobi_operation_duration_seconds",
			Help:    "Explorer operation latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		rows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gobi_dataset_rows",
			Help: "Rows in the currently loaded dataset.",
		}),
	}
	r.reg.MustRegister(
		r.operations,
		r.durations,
		r.rows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Observe records one finished operation.
func (r *Registry) Observe(operation, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.operations.WithLabelValues(operation, outcome).Inc()
	r.durations.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Track returns a func that records the operation with the outcome it is given, timed from now.
func (r *Registry) Track(operation string) func(outcome string) {
	start := time.Now()
	return func(outcome string) {
		r.Observe(operation, outcome, time.Since(start))
	}
}

// SetDatasetRows updates the loaded dataset gauge.
func (r *Registry) SetDatasetRows(n int) {
	if r == nil {
		return
	}
	r.rows.Set(float64(n))
}

// Gatherer returns the underlying prometheus gatherer.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Handler serves the registry in the prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
