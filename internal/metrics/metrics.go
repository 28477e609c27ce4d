package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics owns its own registry so several servers in one test binary do not
// collide on the default one.
type Metrics struct {
	registry *prometheus.Registry
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func New(backendName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	constLabels := prometheus.Labels{"backend": backendName}

	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "search_agent_calls_total",
		Help:        "Search and fetch calls by operation and outcome.",
		ConstLabels: constLabels,
	}, []string{"operation", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "search_agent_call_duration_seconds",
		Help:        "Latency of search and fetch calls, backend included.",
		ConstLabels: constLabels,
		Buckets:     prometheus.DefBuckets,
	}, []string{"operation"})

	registry.MustRegister(calls, duration)

	return &Metrics{
		registry: registry,
		calls:    calls,
		duration: duration,
	}
}

// Observe records one call. A nil Metrics is a no-op.
func (m *Metrics) Observe(operation string, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(operation, outcome).Inc()
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (m *Metrics) Calls(operation string, outcome string) prometheus.Counter {
	return m.calls.WithLabelValues(operation, outcome)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
