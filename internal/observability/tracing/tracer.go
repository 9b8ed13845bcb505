package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// TracerName identifies spans created by this application.
const TracerName = "redditxstory"

// GetTracer returns the tracer from the global provider.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "crawl r/nosleep")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// Init installs a global tracer provider sampling the given fraction of
// root spans, and the W3C trace context propagator. No exporter is attached;
// span contexts still carry trace IDs for log correlation and for callers
// that continue a trace. The returned func flushes and shuts the provider down.
func Init(sampleRatio float64) func(context.Context) error {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown
}
