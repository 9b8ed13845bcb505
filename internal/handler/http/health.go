// Package http provides the HTTP surface of the story site: middleware,
// probes, metrics and SEO endpoints. Feature handlers live in subpackages.
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"redditxstory/internal/handler/http/respond"
)

// StoreProbe is the part of the row store the probes need.
type StoreProbe interface {
	Enabled() bool
	Ping(ctx context.Context) error
	DB() *sql.DB
}

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy", "degraded" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339, UTC
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthHandler reports database connectivity and pool statistics.
//
// Running without a database is a supported mode: the site serves empty
// listings, so a disabled store reports "degraded" with 200.
type HealthHandler struct {
	Store   StoreProbe
	Version string
}

// ServeHTTP returns 200 when healthy or degraded and 503 when unhealthy.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	dbCheck := h.checkDatabase(ctx)

	code := http.StatusOK
	if dbCheck.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    dbCheck.Status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    map[string]CheckStatus{"database": dbCheck},
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if h.Store == nil || !h.Store.Enabled() {
		return CheckStatus{Status: "degraded", Message: "not configured"}
	}

	if err := h.Store.Ping(ctx); err != nil {
		slog.Default().Warn("health: database ping failed",
			slog.String("error", respond.SanitizeError(err)))
		return CheckStatus{Status: "unhealthy", Message: "database unreachable"}
	}

	stats := h.Store.DB().Stats()
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}

	if stats.MaxOpenConnections == 0 {
		return CheckStatus{
			Status:  "degraded",
			Message: "connection pool max connections not configured",
			Details: details,
		}
	}

	utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilization
	if utilization >= 80.0 {
		return CheckStatus{
			Status:  "degraded",
			Message: "connection pool utilization above 80%",
			Details: details,
		}
	}

	return CheckStatus{Status: "healthy", Details: details}
}

// ReadyHandler handles readiness probes. A disabled store is ready; a
// configured store must answer a ping.
type ReadyHandler struct {
	Store StoreProbe
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.Store != nil && h.Store.Enabled() {
		if err := h.Store.Ping(ctx); err != nil {
			respond.Text(w, http.StatusServiceUnavailable, "text/plain; charset=utf-8", "database not ready")
			return
		}
	}
	respond.Text(w, http.StatusOK, "text/plain; charset=utf-8", "ready")
}

// LiveHandler handles liveness probes and always returns 200.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	respond.Text(w, http.StatusOK, "text/plain; charset=utf-8", "alive")
}
