// Package observability groups the logging, metrics and tracing helpers
// shared by the API server and the ingestion worker.
//
// Subpackages:
//   - logging: slog setup and request-scoped loggers
//   - metrics: Prometheus business metrics for stories and ingestion
//   - tracing: OpenTelemetry tracer provider and HTTP middleware
package observability
