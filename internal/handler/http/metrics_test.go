package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware_PathNormalization(t *testing.T) {
	httpRequestsTotal.Reset()

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}))

	for _, p := range []string{"/story/a-abc1", "/story/b-abc2", "/story/c-abc3"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, 1, testutil.CollectAndCount(httpRequestsTotal),
		"three slugs must collapse to one series")
	assert.Equal(t, float64(3),
		testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/story/:slug", "200")))
}

func TestMetricsMiddleware_StatusCodes(t *testing.T) {
	httpRequestsTotal.Reset()

	codes := map[string]int{
		"/":              http.StatusOK,
		"/story/missing": http.StatusNotFound,
		"/admin":         http.StatusUnauthorized,
		"/sitemap.xml":   http.StatusServiceUnavailable,
	}

	for path, code := range codes {
		handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/story/:slug", "404")))
	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/admin", "401")))
	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/sitemap.xml", "503")))
}

func TestMetricsMiddleware_QueryDropped(t *testing.T) {
	httpRequestsTotal.Reset()

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/load-more-stories?page=4", nil))

	assert.Equal(t, float64(1),
		testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/load-more-stories", "200")))
}

func TestMetricsMiddleware_InFlight(t *testing.T) {
	var during float64
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = testutil.ToFloat64(httpRequestsInFlight)
	}))

	before := testutil.ToFloat64(httpRequestsInFlight)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, before+1, during)
	assert.Equal(t, before, testutil.ToFloat64(httpRequestsInFlight))
}

func TestMetricsMiddleware_Sizes(t *testing.T) {
	httpRequestSize.Reset()
	httpResponseSize.Reset()

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 512)))
	}))
	req := httptest.NewRequest(http.MethodPost, "/admin/subreddits", strings.NewReader(`{"name":"TIFU"}`))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, 1, testutil.CollectAndCount(httpRequestSize))
	assert.Equal(t, 1, testutil.CollectAndCount(httpResponseSize))
}

func TestMetricsHandler(t *testing.T) {
	httpRequestsTotal.WithLabelValues("GET", "/", "200").Inc()

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestMetricsMiddleware_DurationAndSize(t *testing.T) {
	httpRequestDuration.Reset()
	httpResponseSize.Reset()

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 250)))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/live", nil))

	var m dto.Metric
	obs := httpRequestDuration.WithLabelValues("GET", "/live", "200")
	require.NoError(t, obs.(prometheus.Metric).Write(&m))
	assert.Equal(t, uint64(1), m.GetHistogram().GetSampleCount())

	m.Reset()
	obs = httpResponseSize.WithLabelValues("GET", "/live")
	require.NoError(t, obs.(prometheus.Metric).Write(&m))
	assert.Equal(t, float64(250), m.GetHistogram().GetSampleSum())
}
