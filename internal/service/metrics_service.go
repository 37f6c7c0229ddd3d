package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Nshuti7/wholesome-ug-bn/internal/store"
)

// MetricsService encapsulates Prometheus instrumentation: HTTP traffic,
// rate-limit rejections and the session store's failover state.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	rateLimited     *prometheus.CounterVec
	storeState      prometheus.Gauge
	fallbackKeys    prometheus.Gauge
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	rateLimited := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rate_limited_requests_total",
		Help: "Requests rejected by the rate limiter",
	}, []string{"path"})

	storeState := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "session_store_state",
		Help: "Session store connectivity: 0 disconnected, 1 degraded, 2 connected",
	})

	fallbackKeys := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "session_store_fallback_keys",
		Help: "Keys held by the in-memory fallback store",
	})

	registry.MustRegister(requestDuration, requestTotal, rateLimited, storeState, fallbackKeys)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		rateLimited:     rateLimited,
		storeState:      storeState,
		fallbackKeys:    fallbackKeys,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (m *MetricsService) Handler() http.Handler {
	return m.handler
}

// ObserveHTTPRequest records one handled request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}
	m.requestDuration.With(labels).Observe(duration.Seconds())
	m.requestTotal.With(labels).Inc()
	if status == http.StatusTooManyRequests {
		m.rateLimited.With(prometheus.Labels{"path": path}).Inc()
	}
}

// ObserveStoreStatus records the failover store's current shape.
func (m *MetricsService) ObserveStoreStatus(status store.Status) {
	m.storeState.Set(float64(status.State))
	m.fallbackKeys.Set(float64(status.FallbackSize))
}
