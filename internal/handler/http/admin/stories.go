package admin

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"redditxstory/internal/common/pagination"
	"redditxstory/internal/handler/http/pathutil"
	"redditxstory/internal/handler/http/requestid"
	"redditxstory/internal/handler/http/respond"
	"redditxstory/internal/handler/http/story"
	"redditxstory/internal/observability/logging"
	storyUC "redditxstory/internal/usecase/story"
)

// StoryHandler serves the moderation listing and story removal.
type StoryHandler struct {
	Svc    StoryModerator
	Logger *slog.Logger
}

// List returns a page of all stories, newest first.
func (h StoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	params := pagination.ParseQueryParams(r, 1)
	params.Subreddit = ""

	page, err := h.Svc.ListAdmin(ctx, params.Page)
	if err != nil {
		pagination.LogError(logger, reqID, params, err, "database")
		pagination.RecordError("database")
		pagination.RecordRequest("admin", http.StatusInternalServerError, params.Page)
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	out := story.NewPageDTO(page)
	duration := time.Since(start)
	pagination.RecordRequest("admin", http.StatusOK, params.Page)
	pagination.LogResponse(logger, reqID, params, len(out.Items), out.HasNext, duration, http.StatusOK)

	respond.JSON(w, http.StatusOK, out)
}

// Delete removes a story by numeric ID.
func (h StoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, storyUC.ErrInvalidStoryID):
			code = http.StatusBadRequest
		case errors.Is(err, storyUC.ErrStoryNotFound):
			code = http.StatusNotFound
		default:
			logging.WithRequestID(r.Context(), h.Logger).Error("delete story failed",
				slog.Int64("id", id), slog.Any("error", err))
		}
		respond.SafeError(w, code, err)
		return
	}

	logging.WithRequestID(r.Context(), h.Logger).Info("story deleted", slog.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}
