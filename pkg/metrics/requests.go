package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics records backend request outcomes from the API client.
type RequestMetrics struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewRequestMetrics registers the request metrics on the provided registerer.
func NewRequestMetrics(reg prometheus.Registerer) *RequestMetrics {
	if reg == nil {
		return &RequestMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backend_request_duration_seconds",
		Help:    "Duration of backend API requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
	total := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backend_requests_total",
		Help: "Backend API requests by status code.",
	}, []string{"method", "path", "status"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backend_request_failures",
		Help: "Backend API requests that never produced a response.",
	}, []string{"method", "path"})
	reg.MustRegister(duration, total, failures)
	return &RequestMetrics{
		duration: duration,
		total:    total,
		failures: failures,
	}
}

// Observe records one request outcome. A zero status means the transport
// failed before any response arrived.
func (m *RequestMetrics) Observe(method, path string, status int, elapsed time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	method = normalizeLabel(method)
	path = normalizeLabel(path)
	m.duration.WithLabelValues(method, path).Observe(elapsed.Seconds())
	if status == 0 {
		m.failures.WithLabelValues(method, path).Inc()
		return
	}
	m.total.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
