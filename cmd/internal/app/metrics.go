package app

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authapi "sixcities/cmd/internal/auth/api"
	"sixcities/cmd/internal/auth/gate"
)

var (
	_ gate.Observer   = (*Metrics)(nil)
	_ authapi.Metrics = (*Metrics)(nil)
	_ HTTPObserver    = (*Metrics)(nil)
)

// Metrics holds the service's Prometheus collectors on a private registry.
// It implements gate.Observer, authapi.Metrics and HTTPObserver.
type Metrics struct {
	reg *prometheus.Registry

	gateDecisions *prometheus.CounterVec
	logins        *prometheus.CounterVec
	registrations *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// NewMetrics registers all collectors, plus Go runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		gateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sixcities",
			Subsystem: "auth",
			Name:      "gate_decisions_total",
			Help:      "Authentication gate outcomes by policy and stage.",
		}, []string{"policy", "stage"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sixcities",
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sixcities",
			Subsystem: "auth",
			Name:      "registrations_total",
			Help:      "Registration attempts by outcome.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sixcities",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sixcities",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			// Login and register are dominated by Argon2id, so the buckets reach past a second.
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route"}),
	}

	m.reg.MustRegister(
		m.gateDecisions,
		m.logins,
		m.registrations,
		m.httpRequests,
		m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the private registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// ObserveGate implements gate.Observer.
func (m *Metrics) ObserveGate(policy gate.Policy, stage gate.Stage) {
	m.gateDecisions.WithLabelValues(policy.String(), string(stage)).Inc()
}

// ObserveLogin implements authapi.Metrics.
func (m *Metrics) ObserveLogin(outcome string) {
	m.logins.WithLabelValues(outcome).Inc()
}

// ObserveRegister implements authapi.Metrics.
func (m *Metrics) ObserveRegister(outcome string) {
	m.registrations.WithLabelValues(outcome).Inc()
}

// ObserveHTTP implements HTTPObserver.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
