package subreddit_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redditxstory/internal/domain/entity"
	subUC "redditxstory/internal/usecase/subreddit"
)

type stubRepo struct {
	data map[string]bool
	err  error
}

func newStub(enabled map[string]bool) *stubRepo {
	if enabled == nil {
		enabled = map[string]bool{}
	}
	return &stubRepo{data: enabled}
}

func (s *stubRepo) names(onlyEnabled bool) []string {
	var out []string
	for name, en := range s.data {
		if !onlyEnabled || en {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func (s *stubRepo) List(_ context.Context) ([]*entity.Subreddit, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.Subreddit
	for _, n := range s.names(false) {
		out = append(out, &entity.Subreddit{Name: n, Enabled: s.data[n]})
	}
	return out, nil
}

func (s *stubRepo) ListEnabledNames(_ context.Context) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.names(true), nil
}

func (s *stubRepo) Upsert(_ context.Context, name string) error {
	if s.err != nil {
		return s.err
	}
	s.data[name] = true
	return nil
}

func (s *stubRepo) Toggle(_ context.Context, name string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	en, ok := s.data[name]
	if !ok {
		return false, nil
	}
	s.data[name] = !en
	return true, nil
}

func (s *stubRepo) Delete(_ context.Context, name string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.data[name]
	delete(s.data, name)
	return ok, nil
}

func TestService_Add(t *testing.T) {
	repo := newStub(map[string]bool{"pics": false})
	svc := &subUC.Service{Repo: repo}

	name, err := svc.Add(context.Background(), " r/nosleep ")
	require.NoError(t, err)
	assert.Equal(t, "nosleep", name)
	assert.True(t, repo.data["nosleep"])

	_, err = svc.Add(context.Background(), "pics")
	require.NoError(t, err)
	assert.True(t, repo.data["pics"], "re-adding enables")
}

func TestService_Add_Invalid(t *testing.T) {
	svc := &subUC.Service{Repo: newStub(nil)}

	for _, raw := range []string{"", "   ", "r/", "bad name", "semi;colon"} {
		_, err := svc.Add(context.Background(), raw)
		assert.ErrorIs(t, err, entity.ErrValidationFailed, "input %q", raw)
	}
}

func TestService_Toggle(t *testing.T) {
	repo := newStub(map[string]bool{"TIFU": true})
	svc := &subUC.Service{Repo: repo}

	require.NoError(t, svc.Toggle(context.Background(), "TIFU"))
	assert.False(t, repo.data["TIFU"])

	assert.ErrorIs(t, svc.Toggle(context.Background(), "ghost"), subUC.ErrSubredditNotFound)
}

func TestService_Delete(t *testing.T) {
	repo := newStub(map[string]bool{"TIFU": true})
	svc := &subUC.Service{Repo: repo}

	require.NoError(t, svc.Delete(context.Background(), "TIFU"))
	require.NoError(t, svc.Delete(context.Background(), "TIFU"))
	assert.Empty(t, repo.data)
}

func TestService_EnabledNames(t *testing.T) {
	svc := &subUC.Service{Repo: newStub(map[string]bool{"b": true, "a": true, "c": false})}

	names, err := svc.EnabledNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestService_RepoError(t *testing.T) {
	boom := errors.New("db down")
	svc := &subUC.Service{Repo: &stubRepo{data: map[string]bool{}, err: boom}}

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = svc.Add(context.Background(), "ok")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, svc.Toggle(context.Background(), "ok"), boom)
}
