// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hscode_lookups_total",
			Help: "Total number of HS code lookups by outcome",
		},
		[]string{"outcome"},
	)

	DependencyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dependency_duration_seconds",
			Help:    "Duration of redis and database calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"dependency", "result"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
