package subreddit

import (
	"context"
	"fmt"

	"redditxstory/internal/domain/entity"
	"redditxstory/internal/repository"
)

// Service provides subreddit management use cases.
type Service struct {
	Repo repository.SubredditRepository
}

// List returns every configured subreddit ordered by name.
func (s *Service) List(ctx context.Context) ([]*entity.Subreddit, error) {
	subs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subreddits: %w", err)
	}
	return subs, nil
}

// EnabledNames returns the names of enabled subreddits ordered by name.
func (s *Service) EnabledNames(ctx context.Context) ([]string, error) {
	names, err := s.Repo.ListEnabledNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enabled subreddits: %w", err)
	}
	return names, nil
}

// Add stores a subreddit as enabled, re-enabling it if it already exists.
// raw may carry an "r/" prefix. Returns the normalized name.
func (s *Service) Add(ctx context.Context, raw string) (string, error) {
	name := entity.NormalizeSubredditName(raw)
	if err := entity.ValidateSubredditName(name); err != nil {
		return "", err
	}
	if err := s.Repo.Upsert(ctx, name); err != nil {
		return "", fmt.Errorf("add subreddit: %w", err)
	}
	return name, nil
}

// Toggle flips the enabled flag of name.
func (s *Service) Toggle(ctx context.Context, name string) error {
	found, err := s.Repo.Toggle(ctx, entity.NormalizeSubredditName(name))
	if err != nil {
		return fmt.Errorf("toggle subreddit: %w", err)
	}
	if !found {
		return ErrSubredditNotFound
	}
	return nil
}

// Delete removes name. Deleting an unknown subreddit is not an error.
func (s *Service) Delete(ctx context.Context, name string) error {
	if _, err := s.Repo.Delete(ctx, entity.NormalizeSubredditName(name)); err != nil {
		return fmt.Errorf("delete subreddit: %w", err)
	}
	return nil
}
