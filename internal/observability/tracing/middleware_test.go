package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func setupExporter(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
	})
	return exporter
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	Middleware(h).ServeHTTP(rec, req)
	return rec
}

func attrMap(attrs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, a := range attrs {
		m[a.Key] = a.Value
	}
	return m
}

func TestMiddleware_CreatesSpanWithRouteName(t *testing.T) {
	exporter := setupExporter(t)

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	serve(ok, httptest.NewRequest(http.MethodGet, "/story/a-ghost-story-abc123", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /story/:slug", spans[0].Name)

	attrs := attrMap(spans[0].Attributes)
	assert.Equal(t, "GET", attrs["http.method"].AsString())
	assert.Equal(t, "/story/:slug", attrs["http.route"].AsString())
	assert.Equal(t, "/story/a-ghost-story-abc123", attrs["http.path"].AsString())
	assert.Equal(t, int64(200), attrs["http.status_code"].AsInt64())
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
}

func TestMiddleware_AddsTraceIDHeader(t *testing.T) {
	exporter := setupExporter(t)

	rec := serve(http.NotFoundHandler(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, spans[0].SpanContext.TraceID().String(), rec.Header().Get("X-Trace-Id"))
}

func TestMiddleware_PropagatesIncomingTraceContext(t *testing.T) {
	exporter := setupExporter(t)

	const traceID = "4bf92f3577b34da6a3ce929d0e0e4736"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("traceparent", "00-"+traceID+"-00f067aa0ba902b7-01")

	var inner string
	serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner = trace.SpanFromContext(r.Context()).SpanContext().TraceID().String()
		w.WriteHeader(http.StatusOK)
	}), req)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, traceID, spans[0].SpanContext.TraceID().String())
	assert.Equal(t, traceID, inner)
}

func TestMiddleware_ErrorStatus(t *testing.T) {
	tests := []struct {
		code int
		want codes.Code
	}{
		{http.StatusServiceUnavailable, codes.Error},
		{http.StatusInternalServerError, codes.Error},
		{http.StatusNotFound, codes.Unset},
		{http.StatusBadRequest, codes.Unset},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			exporter := setupExporter(t)
			serve(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.code)
			}), httptest.NewRequest(http.MethodGet, "/", nil))

			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.want, spans[0].Status.Code)
		})
	}
}

func TestInit_InstallsProvider(t *testing.T) {
	shutdown := Init(1.0)
	t.Cleanup(func() {
		_ = shutdown(context.Background())
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
	})

	_, span := GetTracer().Start(context.Background(), "probe")
	defer span.End()
	assert.True(t, span.SpanContext().IsSampled())
}
