package transport

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the Flanks transport.
var (
	flanksRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flanks_requests_total",
		Help: "Total Flanks API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	flanksRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flanks_request_duration_seconds",
		Help:    "Flanks API call duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"endpoint"})

	flanksErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flanks_errors_total",
		Help: "Total classified Flanks API errors by class",
	}, []string{"class"})

	flanksRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flanks_retries_total",
		Help: "Total retry attempts by error class",
	}, []string{"error_class"})

	flanksRetryExhaustedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flanks_retry_exhausted_total",
		Help: "Total number of times the retry budget was exhausted by error class",
	}, []string{"error_class"})

	flanksTokenRefreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flanks_token_refreshes_total",
		Help: "Total token exchanges performed against the token endpoint",
	})
)
