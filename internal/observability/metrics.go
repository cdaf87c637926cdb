package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riskibarqy/aes-results/internal/platform/resilience"
)

const metricsNamespace = "aes_results"

// Metrics owns the Prometheus registry for the service. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	registry     *prometheus.Registry
	fetches      *prometheus.CounterVec
	fetchLatency *prometheus.HistogramVec
	circuitState *prometheus.GaugeVec
	requests     *prometheus.CounterVec
	reqLatency   *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "upstream_fetches_total",
			Help:      "Upstream AES fetches by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		fetchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "upstream_fetch_duration_seconds",
			Help:      "Upstream AES fetch latency.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		circuitState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "circuit_state",
			Help:      "1 for the current state of each circuit breaker.",
		}, []string{"breaker", "state"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status.",
		}, []string{"method", "route", "status"}),
		reqLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.fetches,
		m.fetchLatency,
		m.circuitState,
		m.requests,
		m.reqLatency,
	)
	return m
}

// ObserveFetch records one upstream fetch attempt.
func (m *Metrics) ObserveFetch(endpoint, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(endpoint, outcome).Inc()
	m.fetchLatency.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// CircuitStateChanged matches resilience.StateChangeFunc.
func (m *Metrics) CircuitStateChanged(name string, from, to resilience.CircuitState) {
	if m == nil {
		return
	}
	m.circuitState.WithLabelValues(name, string(from)).Set(0)
	m.circuitState.WithLabelValues(name, string(to)).Set(1)
}

// InitCircuit seeds the gauge so a fresh breaker reports closed.
func (m *Metrics) InitCircuit(name string) {
	if m == nil {
		return
	}
	m.circuitState.WithLabelValues(name, string(resilience.CircuitStateClosed)).Set(1)
}

func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.reqLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}
