package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total admin login attempts by result",
		},
		[]string{"result"}, // success | failure
	)

	authDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Admin login handling duration",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	authzCheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "authz_check_duration_seconds",
			Help:    "Admin token verification duration",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	authzDeniedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authz_denied_total",
			Help: "Rejected admin requests by reason",
		},
		[]string{"reason"}, // missing | invalid | expired | forbidden
	)
)

// RecordAuthRequest counts a login attempt.
func RecordAuthRequest(result string) {
	authRequestsTotal.WithLabelValues(result).Inc()
}

// RecordAuthDuration observes how long a login took.
func RecordAuthDuration(seconds float64) {
	authDuration.Observe(seconds)
}

// RecordAuthzCheckDuration observes token verification time.
func RecordAuthzCheckDuration(seconds float64) {
	authzCheckDuration.Observe(seconds)
}

// RecordAuthzDenied counts a rejected admin request.
func RecordAuthzDenied(reason string) {
	authzDeniedTotal.WithLabelValues(reason).Inc()
}
