package pagination

import (
	"log/slog"
	"time"
)

// LogRequest logs a listing request with structured fields.
func LogRequest(logger *slog.Logger, requestID string, params Params) {
	logger.Debug("listing request",
		"request_id", requestID,
		"page", params.Page,
		"subreddit", params.Subreddit)
}

// LogResponse logs a listing response with duration and status.
func LogResponse(logger *slog.Logger, requestID string, params Params, returnedCount int, hasNext bool, duration time.Duration, statusCode int) {
	logger.Info("listing response",
		"request_id", requestID,
		"page", params.Page,
		"subreddit", params.Subreddit,
		"returned_count", returnedCount,
		"has_next", hasNext,
		"duration_ms", duration.Milliseconds(),
		"status", statusCode)
}

// LogError logs a listing error with structured fields.
func LogError(logger *slog.Logger, requestID string, params Params, err error, errorType string) {
	logger.Error("listing error",
		"request_id", requestID,
		"page", params.Page,
		"subreddit", params.Subreddit,
		"error", err.Error(),
		"error_type", errorType)
}
