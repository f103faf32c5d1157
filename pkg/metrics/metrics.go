// Package metrics provides the centralized Prometheus registry reference
// for the Flanks client. The collectors themselves are defined in
// pkg/transport via promauto to keep registration next to the code that
// drives them.
//
// This package documents the available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the Flanks client.
// All collectors register automatically via promauto.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/transport):
//   - flanks_requests_total{endpoint, status} (Counter): Requests by endpoint and HTTP status
//   - flanks_request_duration_seconds{endpoint} (Histogram): Full call duration, retries included
//   - flanks_errors_total{class} (Counter): Classified errors (auth, validation, server, network, ...)
//
// Retry Metrics (pkg/transport):
//   - flanks_retries_total{error_class} (Counter): Retry attempts by error class
//   - flanks_retry_exhausted_total{error_class} (Counter): Calls that exhausted the retry budget
//
// Token Metrics (pkg/transport):
//   - flanks_token_refreshes_total (Counter): Token exchanges against /v0/token
//
// Example Prometheus Queries:
//
//   # Request Error Rate
//   rate(flanks_errors_total[5m])
//
//   # P95 Call Latency
//   histogram_quantile(0.95, rate(flanks_request_duration_seconds_bucket[5m]))
//
//   # Token Refresh Rate
//   rate(flanks_token_refreshes_total[1h])
