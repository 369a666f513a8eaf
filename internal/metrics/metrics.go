package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	MessagesDispatched    *prometheus.CounterVec
	QuotaExhaustionsTotal prometheus.Counter
}

func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wablast_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wablast_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "wablast_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),
		MessagesDispatched: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wablast_messages_dispatched_total",
				Help: "Total number of dispatched messages by message kind and outcome",
			},
			[]string{"kind", "status"},
		),
		QuotaExhaustionsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "wablast_quota_exhaustions_total",
				Help: "Total number of blasts aborted by quota exhaustion",
			},
		),
	}
}

func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration.Seconds())
}

func (m *Metrics) RecordMessageDispatched(kind, status string) {
	m.MessagesDispatched.WithLabelValues(kind, status).Inc()
}

func (m *Metrics) RecordQuotaExhaustion() {
	m.QuotaExhaustionsTotal.Inc()
}
