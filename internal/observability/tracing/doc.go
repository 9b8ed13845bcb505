// Package tracing wires OpenTelemetry into the HTTP server.
//
// Init installs the global provider at startup; Middleware opens one server
// span per request so the access log can carry trace IDs.
//
//	shutdown := tracing.Init(1.0)
//	defer shutdown(context.Background())
//	handler := tracing.Middleware(mux)
package tracing
