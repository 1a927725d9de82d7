// Package metrics exposes Prometheus counters for the decision
// pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the decision pipeline.
type Metrics struct {
	DecisionsTotal     *prometheus.CounterVec // labels: action
	ValidationFailures prometheus.Counter
	RouteErrors        *prometheus.CounterVec // labels: sink

	registry *prometheus.Registry
}

// New creates and registers the pipeline metrics on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		DecisionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradegate_decisions_total",
			Help: "Decisions produced, by terminal action",
		}, []string{"action"}),
		ValidationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradegate_validation_failures_total",
			Help: "Signals that scored below the confidence threshold",
		}),
		RouteErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradegate_route_errors_total",
			Help: "Report routing failures, by sink",
		}, []string{"sink"}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(m.DecisionsTotal, m.ValidationFailures, m.RouteErrors)
	return m
}

// Handler returns an HTTP handler serving the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
