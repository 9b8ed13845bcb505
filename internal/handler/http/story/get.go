package story

import (
	"errors"
	"log/slog"
	"net/http"

	"redditxstory/internal/handler/http/respond"
	"redditxstory/internal/observability/logging"
	storyUC "redditxstory/internal/usecase/story"
)

// GetHandler serves a single story by slug.
type GetHandler struct {
	Svc    Service
	Logger *slog.Logger
}

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	st, err := h.Svc.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, storyUC.ErrStoryNotFound) {
			respond.JSON(w, http.StatusNotFound, map[string]string{"error": "story not found"})
			return
		}
		logging.WithRequestID(r.Context(), h.Logger).Error("story lookup failed",
			slog.String("slug", slug),
			slog.Any("error", err))
		respond.SafeError(w, http.StatusServiceUnavailable,
			respond.NewAppError(http.StatusServiceUnavailable, "stories temporarily unavailable", err))
		return
	}

	respond.JSON(w, http.StatusOK, NewDTO(st, true))
}
