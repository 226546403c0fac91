// Package metrics defines the Prometheus metrics exposed by the API. It is
// the single source of truth for metric names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "weathertunes"

// GraphQLOperationsTotal counts resolved GraphQL operations.
// Labels:
//   - operation: the operation name (e.g. "getCurrentWeather", "login")
//   - status: "ok" or "error"
var GraphQLOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "graphql_operations_total",
		Help:      "Total number of GraphQL operations resolved, by operation and status.",
	},
	[]string{"operation", "status"},
)

// UpstreamRequestsTotal counts outbound provider calls.
// Labels:
//   - provider: "openweathermap" or "ip-api"
//   - outcome: "success" or "error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of upstream provider calls, by provider and outcome.",
	},
	[]string{"provider", "outcome"},
)

// HTTPRequestDuration measures inbound request latency.
// Labels:
//   - method: HTTP method
//   - path: request path
//   - status: response status code
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of inbound HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "path", "status"},
)
