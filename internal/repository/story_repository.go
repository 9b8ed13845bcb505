package repository

import (
	"context"
	"time"

	"redditxstory/internal/domain/entity"
)

// StoryFilter narrows a story listing. The zero value lists every subreddit.
type StoryFilter struct {
	Subreddit string // Exact subreddit name; empty means all
}

// SitemapEntry is the minimum a sitemap needs per story.
type SitemapEntry struct {
	Slug      string
	CreatedAt time.Time
}

type StoryRepository interface {
	// ListPage returns up to limit stories starting at offset, newest first
	// (created_at DESC, id DESC). Callers pass page size + 1 as limit to
	// detect a following page.
	ListPage(ctx context.Context, filter StoryFilter, offset, limit int) ([]*entity.Story, error)
	// GetBySlug returns (nil, nil) when no story has the slug.
	GetBySlug(ctx context.Context, slug string) (*entity.Story, error)
	Count(ctx context.Context) (int64, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)
	// UpsertBatch inserts stories keyed by reddit_id, refreshing title,
	// score, comment count and non-empty content of existing rows.
	UpsertBatch(ctx context.Context, stories []*entity.Story) (int64, error)
	// ExistingRedditIDs reports which of ids are already stored.
	ExistingRedditIDs(ctx context.Context, ids []string) (map[string]bool, error)
	ListRecent(ctx context.Context, limit int) ([]SitemapEntry, error)
}
