package admin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"redditxstory/internal/domain/entity"
	"redditxstory/internal/handler/http/respond"
	"redditxstory/internal/observability/logging"
	subUC "redditxstory/internal/usecase/subreddit"
)

type subredditDTO struct {
	Name      string    `json:"name"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

func toSubredditDTOs(subs []*entity.Subreddit) []subredditDTO {
	out := make([]subredditDTO, 0, len(subs))
	for _, s := range subs {
		out = append(out, subredditDTO{Name: s.Name, Enabled: s.Enabled, CreatedAt: s.CreatedAt})
	}
	return out
}

type addSubredditRequest struct {
	Name string `json:"name"`
}

// SubredditHandler manages the curated subreddit list.
type SubredditHandler struct {
	Svc    SubredditManager
	Logger *slog.Logger
}

// List returns every subreddit ordered by name.
func (h SubredditHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.Svc.List(r.Context())
	if err != nil {
		logging.WithRequestID(r.Context(), h.Logger).Error("list subreddits failed", slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, toSubredditDTOs(subs))
}

// Add stores a subreddit as enabled.
func (h SubredditHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addSubredditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	name, err := h.Svc.Add(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, entity.ErrValidationFailed) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		logging.WithRequestID(r.Context(), h.Logger).Error("add subreddit failed",
			slog.String("name", req.Name), slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	logging.WithRequestID(r.Context(), h.Logger).Info("subreddit added", slog.String("name", name))
	respond.JSON(w, http.StatusCreated, subredditDTO{Name: name, Enabled: true})
}

// Toggle flips a subreddit between enabled and disabled.
func (h SubredditHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := h.Svc.Toggle(r.Context(), name); err != nil {
		if errors.Is(err, subUC.ErrSubredditNotFound) {
			respond.SafeError(w, http.StatusNotFound, err)
			return
		}
		logging.WithRequestID(r.Context(), h.Logger).Error("toggle subreddit failed",
			slog.String("name", name), slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a subreddit. Stories already fetched from it are kept.
func (h SubredditHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := h.Svc.Delete(r.Context(), name); err != nil {
		logging.WithRequestID(r.Context(), h.Logger).Error("delete subreddit failed",
			slog.String("name", name), slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
