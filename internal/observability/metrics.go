package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the API.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP surface metrics.
	RequestsTotal   *prometheus.CounterVec   // labels: route, status
	RequestDuration *prometheus.HistogramVec // labels: route

	// Domain metrics.
	LookupsTotal     *prometheus.CounterVec // labels: dataset, outcome={hit,miss}
	ConversionsTotal *prometheus.CounterVec // labels: method, outcome={ok,invalid,error}

	// Ready is 1 once the reference store has loaded, 0 before.
	Ready prometheus.Gauge
}

func newMetrics() *Metrics {
	return &Metrics{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wte",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wte",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route pattern.",
			Buckets:   []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route"}),
		LookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wte",
			Name:      "reference_lookups_total",
			Help:      "County reference lookups by dataset and outcome.",
		}, []string{"dataset", "outcome"}),
		ConversionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wte",
			Name:      "conversions_total",
			Help:      "Conversion attempts by method and outcome.",
		}, []string{"method", "outcome"}),
		Ready: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wte",
			Name:      "ready",
			Help:      "1 once the reference store has loaded, 0 before.",
		}),
	}
}

// NewMetrics creates all API metrics on a private registry together with the
// standard Go runtime and process collectors.
func NewMetrics() *Metrics {
	m := newMetrics()
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestsTotal,
		m.RequestDuration,
		m.LookupsTotal,
		m.ConversionsTotal,
		m.Ready,
	)
	return m
}

// NewMetricsForTesting creates Metrics on a fresh registry without the
// runtime collectors, so tests can construct as many instances as they like
// without "already registered" panics or noisy scrape output.
func NewMetricsForTesting() *Metrics {
	m := newMetrics()
	m.registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.LookupsTotal,
		m.ConversionsTotal,
		m.Ready,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
