package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the HTTP API.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	aiRequestsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on the registerer.
// Pass prometheus.DefaultRegisterer for the /metrics endpoint.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "visapath_http_requests_total",
			Help: "HTTP requests by method, path, and status.",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "visapath_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		aiRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "visapath_ai_requests_total",
			Help: "Model requests by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration, m.aiRequestsTotal)
	return m
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// ObserveAIRequest records one model request outcome, e.g.
// ("timeline", "ok") or ("chat", "rate_limited").
func (m *Metrics) ObserveAIRequest(kind, outcome string) {
	m.aiRequestsTotal.WithLabelValues(kind, outcome).Inc()
}
