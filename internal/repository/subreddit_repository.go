package repository

import (
	"context"

	"redditxstory/internal/domain/entity"
)

type SubredditRepository interface {
	// List returns every subreddit ordered by name.
	List(ctx context.Context) ([]*entity.Subreddit, error)
	// ListEnabledNames returns enabled subreddit names ordered by name.
	ListEnabledNames(ctx context.Context) ([]string, error)
	// Upsert adds name, or re-enables it when it already exists.
	Upsert(ctx context.Context, name string) error
	// Toggle flips enabled and reports whether the subreddit exists.
	Toggle(ctx context.Context, name string) (bool, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, name string) (bool, error)
}
