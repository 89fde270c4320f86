// Package metrics provides Prometheus metrics for mock serving observability.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace for all mockhub metrics.
const namespace = "mockhub"

// Serving metrics
var (
	// RequestsTotal counts mock requests by project, method and status.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of mock requests served",
		},
		[]string{"project", "method", "status"},
	)

	// RequestDuration measures request handling time including simulated delay.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Mock request handling duration in seconds",
			Buckets:   []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"project", "method"},
	)

	// UnmatchedTotal counts requests that resolved a project but no endpoint.
	UnmatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unmatched_requests_total",
			Help:      "Total number of requests with no matching endpoint",
		},
		[]string{"project", "method"},
	)
)

// Live feed metrics
var (
	// LogSubscribers tracks the current number of live log subscribers.
	LogSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "log_subscribers",
			Help:      "Current number of live request log subscribers",
		},
	)

	// NotificationsDropped counts notifications dropped on slow subscribers.
	NotificationsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_dropped_total",
			Help:      "Total number of log notifications dropped on full subscriber buffers",
		},
	)
)

// Application metrics
var (
	// AppInfo provides build information as labels.
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "app_info",
			Help:      "mockhub application information",
		},
		[]string{"version"},
	)
)

// RecordRequest records a served mock request.
func RecordRequest(project, method string, status int, durationSeconds float64) {
	RequestsTotal.WithLabelValues(project, method, strconv.Itoa(status)).Inc()
	RequestDuration.WithLabelValues(project, method).Observe(durationSeconds)
}

// RecordUnmatched records a request that matched a project but no endpoint.
func RecordUnmatched(project, method string) {
	UnmatchedTotal.WithLabelValues(project, method).Inc()
}

// SetAppInfo sets the application info metric.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version).Set(1)
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
