package strapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for façade operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "strapi_requests_total",
		Help: "Total content API requests by operation and status",
	}, []string{"operation", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "strapi_request_duration_seconds",
		Help:    "Content API request duration in seconds by operation",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
	}, []string{"operation"})

	validationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "strapi_validation_failures_total",
		Help: "Responses rejected during shape validation by failure kind",
	}, []string{"kind"}) // "permission_denied", "not_found", "unknown"
)
