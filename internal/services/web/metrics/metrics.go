// Package metrics exports web service counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ourhour/ourhour-web/internal/platform/inflight"
	"github.com/ourhour/ourhour-web/internal/services/web/verification"
)

const namespace = "ourhour_web"

// Metrics owns the registry and the verification collectors. It implements
// verification.Observer.
type Metrics struct {
	registry      *prometheus.Registry
	verifications *prometheus.CounterVec
	accepts       *prometheus.CounterVec
	inflight      prometheus.Gauge
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Token verifications by kind, outcome, and failure reason.",
		}, []string{"kind", "outcome", "reason"}),
		accepts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invitation_accepts_total",
			Help:      "Pending invitation auto-accepts by outcome.",
		}, []string{"outcome"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "backend_inflight_requests",
			Help:      "Backend API calls currently in flight.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.verifications,
		m.accepts,
		m.inflight,
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// VerificationFinished counts one verification.
func (m *Metrics) VerificationFinished(kind verification.Kind, result verification.Result) {
	outcome, reason := "success", ""
	if !result.Succeeded() {
		outcome, reason = "failure", string(result.FailureReason())
	}
	m.verifications.WithLabelValues(string(kind), outcome, reason).Inc()
}

// AcceptFinished counts one auto-accept attempt.
func (m *Metrics) AcceptFinished(ok bool) {
	outcome := "failure"
	if ok {
		outcome = "success"
	}
	m.accepts.WithLabelValues(outcome).Inc()
}

// TrackInflight mirrors tracker into the in-flight gauge until stop is called.
func (m *Metrics) TrackInflight(tracker *inflight.Tracker) (stop func()) {
	if tracker == nil {
		return func() {}
	}
	m.inflight.Set(float64(tracker.Count()))
	return tracker.Subscribe(func(count int64) {
		m.inflight.Set(float64(count))
	})
}

var _ verification.Observer = (*Metrics)(nil)
