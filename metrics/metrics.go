package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks the latency of every API request
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "retailhub_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
			Buckets: []float64{
				0.001, // 1ms
				0.005, // 5ms
				0.01,  // 10ms
				0.025, // 25ms
				0.05,  // 50ms
				0.1,   // 100ms
				0.25,  // 250ms
				0.5,   // 500ms
				1.0,   // 1s
				2.5,   // 2.5s
				5.0,   // 5s
			},
		},
		[]string{"method", "route", "status"},
	)

	// PriceResolutions counts discount resolutions by whether a campaign applied
	PriceResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retailhub_price_resolutions_total",
			Help: "Number of catalog price resolutions",
		},
		[]string{"campaign"}, // none or active
	)
)

// RecordHTTPRequest records the duration of a single request
func RecordHTTPRequest(method, route, status string, duration float64) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(duration)
}

// RecordPriceResolution counts one resolution; active reports whether a campaign was applied
func RecordPriceResolution(active bool) {
	label := "none"
	if active {
		label = "active"
	}
	PriceResolutions.WithLabelValues(label).Inc()
}
