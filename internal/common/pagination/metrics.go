package pagination

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts listing requests.
	// Labels: listing (public, load_more, admin), status, page_range
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_pagination_requests_total",
			Help: "Total number of story listing requests",
		},
		[]string{"listing", "status", "page_range"},
	)

	// DurationSeconds tracks listing duration distribution.
	// Labels: operation (handler, service)
	DurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "story_pagination_duration_seconds",
			Help:    "Story listing duration distribution",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.2, 0.5, 1.0},
		},
		[]string{"operation"},
	)

	// ErrorsTotal counts listing errors by type.
	// Labels: type (database, timeout)
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_pagination_errors_total",
			Help: "Total number of story listing errors",
		},
		[]string{"type"},
	)
)

// RecordRequest records a listing request metric.
func RecordRequest(listing string, statusCode int, page int) {
	RequestsTotal.WithLabelValues(
		listing,
		fmt.Sprintf("%d", statusCode),
		getPageRangeBucket(page),
	).Inc()
}

// RecordDuration records operation duration in seconds.
func RecordDuration(operation string, duration float64) {
	DurationSeconds.WithLabelValues(operation).Observe(duration)
}

// RecordError records an error metric.
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

// getPageRangeBucket returns the page range bucket for a given page number.
func getPageRangeBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
