// Package story serves the public story listing and story pages as JSON.
package story

import (
	"log/slog"
	"net/http"
)

// Register mounts the public story routes on mux.
func Register(mux *http.ServeMux, svc Service, logger *slog.Logger) {
	mux.Handle("GET /{$}", ListHandler{Svc: svc, Logger: logger, Listing: "public", DefaultPage: 1})
	mux.Handle("GET /load-more-stories", ListHandler{Svc: svc, Logger: logger, Listing: "load_more", DefaultPage: 2})
	mux.Handle("GET /story/{slug}", GetHandler{Svc: svc, Logger: logger})
}
