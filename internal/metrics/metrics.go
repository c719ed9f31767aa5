// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
	unknownMode   = "unknown"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecotrack_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ecotrack_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ecotrack_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecotrack_upstream_requests_total",
			Help: "Total number of text-completion requests",
		},
		[]string{"service", "operation", "status"},
	)

	// generation can take tens of seconds
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ecotrack_upstream_request_duration_seconds",
			Help:    "Text-completion request duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0},
		},
		[]string{"service", "operation"},
	)

	FootprintCalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecotrack_footprint_calculations_total",
			Help: "Total number of footprint calculations by transport mode",
		},
		[]string{"mode"},
	)

	PanicRecoveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ecotrack_panic_recoveries_total",
			Help: "Total number of panics recovered in HTTP handlers",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func RecordUpstreamRequest(service, operation string, duration time.Duration, success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	UpstreamRequestsTotal.WithLabelValues(service, operation, status).Inc()
	UpstreamRequestDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// RecordCalculation counts a calculation. Modes outside the table share one label
// so caller input can't grow the series count.
func RecordCalculation(mode string, known bool) {
	if !known {
		mode = unknownMode
	}
	FootprintCalculationsTotal.WithLabelValues(mode).Inc()
}
