package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides observability for the HTTP adapter.
type Metrics struct {
	registry *prometheus.Registry

	// Requests by route pattern, method and status code
	Requests *prometheus.CounterVec

	// Request latency by route pattern
	Latency *prometheus.HistogramVec

	// Evaluated outcomes by result: settles, blocked, insufficient_input
	Outcomes *prometheus.CounterVec
}

// NewMetrics creates the adapter metrics on a private registry so several servers
// can coexist in one process.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ilrcalc_http_requests_total",
			Help: "Total HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),

		Latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ilrcalc_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"route"}),

		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ilrcalc_outcomes_total",
			Help: "Total settlement evaluations by result",
		}, []string{"result"}),
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route, method, status string, d time.Duration) {
	if m != nil {
		m.Requests.WithLabelValues(route, method, status).Inc()
		m.Latency.WithLabelValues(route).Observe(d.Seconds())
	}
}

// IncrementOutcome records one evaluation result.
func (m *Metrics) IncrementOutcome(result string) {
	if m != nil {
		m.Outcomes.WithLabelValues(result).Inc()
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
