package admin

import (
	"log/slog"
	"net/http"

	"redditxstory/internal/handler/http/respond"
	"redditxstory/internal/observability/logging"
	"redditxstory/internal/observability/metrics"
)

type dashboardDTO struct {
	TotalStories      int64          `json:"total_stories"`
	EnabledSubreddits int            `json:"enabled_subreddits"`
	Subreddits        []subredditDTO `json:"subreddits"`
}

// DashboardHandler summarizes stored content for the admin landing page.
type DashboardHandler struct {
	Stories    StoryModerator
	Subreddits SubredditManager
	Logger     *slog.Logger
}

func (h DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	total, err := h.Stories.Count(ctx)
	if err != nil {
		logger.Error("count stories failed", slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	subs, err := h.Subreddits.List(ctx)
	if err != nil {
		logger.Error("list subreddits failed", slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	out := dashboardDTO{TotalStories: total, Subreddits: toSubredditDTOs(subs)}
	for _, s := range subs {
		if s.Enabled {
			out.EnabledSubreddits++
		}
	}

	metrics.UpdateStoriesTotal(total)
	metrics.UpdateSubredditsEnabled(out.EnabledSubreddits)

	respond.JSON(w, http.StatusOK, out)
}
