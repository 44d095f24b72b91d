package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Auth gate outcomes.
const (
	AuthOutcomeAccepted     = "accepted"
	AuthOutcomeMissingToken = "missing_token"
	AuthOutcomeInvalidToken = "invalid_token"
	AuthOutcomeUnknownUser  = "unknown_user"
	AuthOutcomeDeactivated  = "deactivated"
	AuthOutcomeLookupFailed = "lookup_failed"
)

// Metrics holds the service collectors.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	AuthGateOutcomes *prometheus.CounterVec
	SignupsTotal     *prometheus.CounterVec
	LoginsTotal      *prometheus.CounterVec
}

// NewMetrics registers the service collectors plus the Go and process
// collectors on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mindhaven_http_requests_total",
				Help: "Total number of HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mindhaven_http_request_duration_seconds",
				Help:    "Histogram of HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		AuthGateOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mindhaven_auth_gate_outcomes_total",
				Help: "Total number of auth gate decisions by outcome",
			},
			[]string{"outcome"},
		),
		SignupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mindhaven_signups_total",
				Help: "Total number of successful signups by role",
			},
			[]string{"role"},
		),
		LoginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mindhaven_logins_total",
				Help: "Total number of login attempts by result",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(m.RequestsTotal, m.RequestDuration, m.AuthGateOutcomes, m.SignupsTotal, m.LoginsTotal)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func (m *Metrics) RecordAuthOutcome(outcome string) {
	m.AuthGateOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordSignup(role string) {
	m.SignupsTotal.WithLabelValues(role).Inc()
}

func (m *Metrics) RecordLogin(result string) {
	m.LoginsTotal.WithLabelValues(result).Inc()
}
