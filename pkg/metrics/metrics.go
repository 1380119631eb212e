// Package metrics provides the Prometheus registry reference for the Strapi
// client. All metrics are defined in their respective packages (strapi,
// cache) and registered via promauto; this package documents them in one
// place.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registerer used by the client.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Cache Metrics (pkg/cache):
//   - strapi_cache_hits_total{backend} (Counter): Cache hits by backend (redis, memory)
//   - strapi_cache_misses_total (Counter): Cache misses
//   - strapi_cache_errors_total{operation} (Counter): Store errors by operation (get, set, delete)
//
// Request Metrics (pkg/strapi):
//   - strapi_requests_total{operation, status} (Counter): Content API requests by operation and HTTP status
//   - strapi_request_duration_seconds{operation} (Histogram): Request duration by operation
//   - strapi_validation_failures_total{kind} (Counter): Rejected responses by kind
//     (permission_denied, not_found, unknown)
//
// Example Prometheus Queries:
//
//	# Cache Hit Rate
//	sum(rate(strapi_cache_hits_total[5m])) /
//	(sum(rate(strapi_cache_hits_total[5m])) + sum(rate(strapi_cache_misses_total[5m])))
//
//	# Validation Failure Rate
//	rate(strapi_validation_failures_total[5m])
//
//	# P95 Request Latency
//	histogram_quantile(0.95, rate(strapi_request_duration_seconds_bucket[5m]))
