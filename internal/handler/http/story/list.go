package story

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"redditxstory/internal/common/pagination"
	"redditxstory/internal/domain/entity"
	"redditxstory/internal/handler/http/requestid"
	"redditxstory/internal/handler/http/respond"
	"redditxstory/internal/observability/logging"
	storyUC "redditxstory/internal/usecase/story"
)

// Service is the part of the story use case the public handlers need.
type Service interface {
	List(ctx context.Context, page int, subreddit string) (*storyUC.Page, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Story, error)
}

// ListHandler serves a page of the public listing.
// DefaultPage applies when the page query parameter is absent or invalid;
// the home listing starts at 1 and "load more" at 2.
type ListHandler struct {
	Svc         Service
	Logger      *slog.Logger
	Listing     string
	DefaultPage int
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	params := pagination.ParseQueryParams(r, h.DefaultPage)
	pagination.LogRequest(logger, reqID, params)

	page, err := h.Svc.List(ctx, params.Page, params.Subreddit)
	if err != nil {
		pagination.LogError(logger, reqID, params, err, "database")
		pagination.RecordError("database")
		pagination.RecordRequest(h.Listing, http.StatusServiceUnavailable, params.Page)
		respond.SafeError(w, http.StatusServiceUnavailable,
			respond.NewAppError(http.StatusServiceUnavailable, "stories temporarily unavailable", err))
		return
	}

	out := NewPageDTO(page)

	duration := time.Since(start)
	pagination.RecordRequest(h.Listing, http.StatusOK, params.Page)
	pagination.RecordDuration("handler", duration.Seconds())
	pagination.LogResponse(logger, reqID, params, len(out.Items), out.HasNext, duration, http.StatusOK)

	respond.JSON(w, http.StatusOK, out)
}
