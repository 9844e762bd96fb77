// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_api_requests_total",
			Help: "Total number of API requests by resource and outcome",
		},
		[]string{"resource", "outcome"},
	)

	APIRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_api_request_errors_total",
			Help: "Total number of failed API requests by resource and error code",
		},
		[]string{"resource", "error_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "admin_api_request_duration_seconds",
			Help: "Duration of API requests in seconds",
		},
		[]string{"resource"},
	)

	PageFetchesActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "admin_page_fetches_active",
			Help: "Number of in-flight collection fetches per page",
		},
		[]string{"page"},
	)
)
