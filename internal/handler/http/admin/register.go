// Package admin serves the authenticated moderation API under /admin.
package admin

import (
	"context"
	"log/slog"
	"net/http"

	"redditxstory/internal/domain/entity"
	"redditxstory/internal/handler/http/auth"
	storyUC "redditxstory/internal/usecase/story"
)

// StoryModerator is the story use case surface the admin panel needs.
type StoryModerator interface {
	ListAdmin(ctx context.Context, page int) (*storyUC.Page, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// SubredditManager is the subreddit use case surface the admin panel needs.
type SubredditManager interface {
	List(ctx context.Context) ([]*entity.Subreddit, error)
	Add(ctx context.Context, raw string) (string, error)
	Toggle(ctx context.Context, name string) error
	Delete(ctx context.Context, name string) error
}

// Deps groups what the admin routes are built from.
type Deps struct {
	Stories    StoryModerator
	Subreddits SubredditManager
	Login      *auth.Endpoints
	// LoginLimit wraps the login endpoint, typically with a per-IP limiter.
	LoginLimit func(http.Handler) http.Handler
	Logger     *slog.Logger
}

// Register mounts the admin routes on mux. Everything except login and
// logout requires a valid admin token.
func Register(mux *http.ServeMux, d Deps) {
	login := http.Handler(http.HandlerFunc(d.Login.Login))
	if d.LoginLimit != nil {
		login = d.LoginLimit(login)
	}
	mux.Handle("POST /admin/login", login)
	mux.HandleFunc("POST /admin/logout", d.Login.Logout)

	authz := auth.Authz(d.Login.Issuer)

	mux.Handle("GET /admin", authz(DashboardHandler{Stories: d.Stories, Subreddits: d.Subreddits, Logger: d.Logger}))

	subs := SubredditHandler{Svc: d.Subreddits, Logger: d.Logger}
	mux.Handle("GET /admin/subreddits", authz(http.HandlerFunc(subs.List)))
	mux.Handle("POST /admin/subreddits", authz(http.HandlerFunc(subs.Add)))
	mux.Handle("POST /admin/subreddits/{name}/toggle", authz(http.HandlerFunc(subs.Toggle)))
	mux.Handle("DELETE /admin/subreddits/{name}", authz(http.HandlerFunc(subs.Delete)))

	stories := StoryHandler{Svc: d.Stories, Logger: d.Logger}
	mux.Handle("GET /admin/stories", authz(http.HandlerFunc(stories.List)))
	mux.Handle("DELETE /admin/stories/{id}", authz(http.HandlerFunc(stories.Delete)))
}
