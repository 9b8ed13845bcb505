package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"redditxstory/internal/common/pagination"
	"redditxstory/internal/domain/entity"
	"redditxstory/internal/handler/http/auth"
	storyUC "redditxstory/internal/usecase/story"
	subUC "redditxstory/internal/usecase/subreddit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type stubStories struct {
	count     int64
	page      *storyUC.Page
	gotPage   int
	deleted   []int64
	deleteErr error
	err       error
}

func (s *stubStories) ListAdmin(_ context.Context, page int) (*storyUC.Page, error) {
	s.gotPage = page
	if s.err != nil {
		return nil, s.err
	}
	if s.page != nil {
		return s.page, nil
	}
	return &storyUC.Page{Metadata: pagination.NewMetadata(page, false)}, nil
}

func (s *stubStories) Count(context.Context) (int64, error) { return s.count, s.err }

func (s *stubStories) Delete(_ context.Context, id int64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

type stubSubreddits struct {
	subs []*entity.Subreddit
}

func (s *stubSubreddits) List(context.Context) ([]*entity.Subreddit, error) { return s.subs, nil }

func (s *stubSubreddits) Add(_ context.Context, raw string) (string, error) {
	name := entity.NormalizeSubredditName(raw)
	if err := entity.ValidateSubredditName(name); err != nil {
		return "", err
	}
	for _, sub := range s.subs {
		if sub.Name == name {
			sub.Enabled = true
			return name, nil
		}
	}
	s.subs = append(s.subs, &entity.Subreddit{Name: name, Enabled: true})
	return name, nil
}

func (s *stubSubreddits) Toggle(_ context.Context, name string) error {
	for _, sub := range s.subs {
		if sub.Name == name {
			sub.Enabled = !sub.Enabled
			return nil
		}
	}
	return subUC.ErrSubredditNotFound
}

func (s *stubSubreddits) Delete(_ context.Context, name string) error {
	kept := s.subs[:0]
	for _, sub := range s.subs {
		if sub.Name != name {
			kept = append(kept, sub)
		}
	}
	s.subs = kept
	return nil
}

type fixture struct {
	mux     *http.ServeMux
	stories *stubStories
	subs    *stubSubreddits
	token   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	issuer, err := auth.NewIssuer(testSecret, time.Hour)
	require.NoError(t, err)
	token, _, err := issuer.IssueToken("admin@example.com")
	require.NoError(t, err)

	f := &fixture{
		mux:     http.NewServeMux(),
		stories: &stubStories{count: 42},
		subs: &stubSubreddits{subs: []*entity.Subreddit{
			{Name: "AskReddit", Enabled: true},
			{Name: "nosleep", Enabled: false},
		}},
		token: token,
	}
	Register(f.mux, Deps{
		Stories:    f.stories,
		Subreddits: f.subs,
		Login: &auth.Endpoints{
			Provider: auth.NewStaticProvider("admin@example.com", "hunter2hunter2"),
			Issuer:   issuer,
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return f
}

func (f *fixture) do(method, target, body string, authed bool) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if authed {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func TestAdmin_RequiresToken(t *testing.T) {
	f := newFixture(t)

	for _, tc := range []struct{ method, target string }{
		{http.MethodGet, "/admin"},
		{http.MethodGet, "/admin/subreddits"},
		{http.MethodPost, "/admin/subreddits"},
		{http.MethodPost, "/admin/subreddits/nosleep/toggle"},
		{http.MethodDelete, "/admin/subreddits/nosleep"},
		{http.MethodGet, "/admin/stories"},
		{http.MethodDelete, "/admin/stories/1"},
	} {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			rec := f.do(tc.method, tc.target, "", false)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAdmin_LoginThenCookieAccess(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/admin/login", `{"email":"admin@example.com","password":"hunter2hunter2"}`, false)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdmin_LoginRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/admin/login", `{"email":"admin@example.com","password":"wrong"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdmin_LoginLimit(t *testing.T) {
	f := newFixture(t)
	blocked := 0
	mux := http.NewServeMux()
	Register(mux, Deps{
		Stories:    f.stories,
		Subreddits: f.subs,
		Login:      &auth.Endpoints{Provider: auth.NewStaticProvider("a@b.c", "x"), Issuer: mustIssuer(t)},
		LoginLimit: func(http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				blocked++
				w.WriteHeader(http.StatusTooManyRequests)
			})
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, 1, blocked)
}

func mustIssuer(t *testing.T) *auth.Issuer {
	iss, err := auth.NewIssuer(testSecret, time.Hour)
	require.NoError(t, err)
	return iss
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/admin", "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var body dashboardDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(42), body.TotalStories)
	assert.Equal(t, 1, body.EnabledSubreddits)
	assert.Len(t, body.Subreddits, 2)
}

func TestDashboard_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.stories.err = errors.New("pq: connection reset")

	rec := f.do(http.MethodGet, "/admin", "", true)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestSubreddits_Lifecycle(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/admin/subreddits", `{"name":"r/TIFU"}`, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"TIFU"`)

	rec = f.do(http.MethodPost, "/admin/subreddits/TIFU/toggle", "", true)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(http.MethodGet, "/admin/subreddits", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []subredditDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 3)
	assert.Equal(t, "TIFU", list[2].Name)
	assert.False(t, list[2].Enabled)

	rec = f.do(http.MethodDelete, "/admin/subreddits/TIFU", "", true)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Len(t, f.subs.subs, 2)

	rec = f.do(http.MethodDelete, "/admin/subreddits/TIFU", "", true)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSubreddits_AddValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		body string
	}{
		{"blank", `{"name":"  "}`},
		{"bad chars", `{"name":"no spaces allowed"}`},
		{"bad json", `{"name":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(http.MethodPost, "/admin/subreddits", tt.body, true)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSubreddits_ToggleMissing(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/admin/subreddits/ghost/toggle", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStories_List(t *testing.T) {
	f := newFixture(t)
	f.stories.page = &storyUC.Page{
		Items:    []*entity.Story{{ID: 9, Title: "T", Slug: "t-9", CreatedAt: time.Now()}},
		Metadata: pagination.NewMetadata(3, true),
	}

	rec := f.do(http.MethodGet, "/admin/stories?page=3&subreddit=ignored", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, f.stories.gotPage)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["has_next"])
	assert.Equal(t, float64(4), body["next_page"])
	assert.Len(t, body["items"], 1)
}

func TestStories_Delete(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		code   int
	}{
		{"ok", "/admin/stories/7", nil, http.StatusNoContent},
		{"non numeric", "/admin/stories/abc", nil, http.StatusBadRequest},
		{"zero", "/admin/stories/0", nil, http.StatusBadRequest},
		{"missing", "/admin/stories/8", storyUC.ErrStoryNotFound, http.StatusNotFound},
		{"store failure", "/admin/stories/9", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.stories.deleteErr = tt.err

			rec := f.do(http.MethodDelete, tt.target, "", true)
			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusNoContent {
				assert.Equal(t, []int64{7}, f.stories.deleted)
			}
		})
	}
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/admin/logout", "", false)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
