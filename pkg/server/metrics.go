package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the dev server
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	proxyErrors         *prometheus.CounterVec
	configReloads       *prometheus.CounterVec
	upstreamInfo        *prometheus.GaugeVec

	registry *prometheus.Registry
}

// NewMetrics creates a metrics instance backed by a private registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commissions_http_requests_total",
				Help: "Total number of HTTP requests by method, endpoint and status code",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "commissions_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		proxyErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commissions_proxy_errors_total",
				Help: "Requests the API proxy could not deliver upstream",
			},
			[]string{"upstream"},
		),

		configReloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commissions_config_reloads_total",
				Help: "Configuration reloads applied by status",
			},
			[]string{"status"},
		),

		upstreamInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "commissions_upstream_info",
				Help: "Currently active API upstream (value is always 1)",
			},
			[]string{"upstream"},
		),

		registry: registry,
	}

	registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.proxyErrors,
		m.configReloads,
		m.upstreamInfo,
	)

	return m
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordProxyError records a failed upstream round trip
func (m *Metrics) RecordProxyError(upstream string) {
	m.proxyErrors.WithLabelValues(upstream).Inc()
}

// RecordConfigReload records a configuration reload attempt
func (m *Metrics) RecordConfigReload(status string) {
	m.configReloads.WithLabelValues(status).Inc()
}

// SetUpstream marks upstream as the active proxy target.
func (m *Metrics) SetUpstream(upstream string) {
	m.upstreamInfo.Reset()
	m.upstreamInfo.WithLabelValues(upstream).Set(1)
}

// Handler returns the Prometheus metrics HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// MetricsMiddleware creates HTTP middleware that records request metrics
func (m *Metrics) MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		m.RecordHTTPRequest(r.Method, getEndpointName(r.URL.Path), strconv.Itoa(wrapped.statusCode), time.Since(start))
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// getEndpointName extracts a normalized endpoint name from the path
func getEndpointName(path string) string {
	switch {
	case path == "/":
		return "index"
	case path == "/healthz":
		return "health"
	case path == "/metrics":
		return "metrics"
	case strings.HasPrefix(path, "/api/"):
		return "api"
	case strings.HasPrefix(path, "/static/"):
		return "static"
	case strings.HasPrefix(path, "/commission/"):
		return "detail"
	default:
		return "unknown"
	}
}
