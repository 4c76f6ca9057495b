// Package metrics holds the prometheus collectors shared by the optimizer.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "promptr"

type Metrics struct {
	fallbacks     *prometheus.CounterVec
	llmRequests   *prometheus.CounterVec
	llmDuration   *prometheus.HistogramVec
	optimizations *prometheus.CounterVec
}

// New creates the collectors and registers them on reg. A nil reg leaves
// them unregistered, which is handy in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallbacks_total",
			Help:      "Times a component fell back to its local path.",
		}, []string{"component", "reason"}),
		llmRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "LLM requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		llmDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_request_duration_seconds",
			Help:      "LLM request latency.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"provider"}),
		optimizations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "optimize_total",
			Help:      "Completed optimizations by domain and version source.",
		}, []string{"domain", "source"}),
	}

	if reg != nil {
		reg.MustRegister(m.fallbacks, m.llmRequests, m.llmDuration, m.optimizations)
	}
	return m
}

// Fallback counts one fallback taken by component
func (m *Metrics) Fallback(component, reason string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(component, reason).Inc()
}

// LLMRequest records one provider call
func (m *Metrics) LLMRequest(provider, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.llmRequests.WithLabelValues(provider, outcome).Inc()
	m.llmDuration.WithLabelValues(provider).Observe(d.Seconds())
}

func (m *Metrics) Optimized(domain, source string) {
	if m == nil {
		return
	}
	m.optimizations.WithLabelValues(domain, source).Inc()
}

// Fallbacks exposes the counter for assertions
func (m *Metrics) Fallbacks() *prometheus.CounterVec {
	return m.fallbacks
}

func (m *Metrics) LLMRequests() *prometheus.CounterVec {
	return m.llmRequests
}

func (m *Metrics) Optimizations() *prometheus.CounterVec {
	return m.optimizations
}
