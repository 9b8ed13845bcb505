package story

import (
	"context"
	"fmt"
	"strings"

	"redditxstory/internal/common/pagination"
	"redditxstory/internal/domain/entity"
	"redditxstory/internal/repository"
)

// Service provides story listing use cases.
type Service struct {
	Repo       repository.StoryRepository
	Pagination pagination.Config
}

// NewService returns a Service with the given page sizes.
func NewService(repo repository.StoryRepository, cfg pagination.Config) *Service {
	return &Service{Repo: repo, Pagination: cfg}
}

// Page is one window of a story listing.
type Page struct {
	Items []*entity.Story
	pagination.Metadata
	Subreddit string
}

// List returns page of the public listing, optionally limited to subreddit.
// Pages below 1 are treated as 1. With no database configured the page is
// empty and HasNext is false.
func (s *Service) List(ctx context.Context, page int, subreddit string) (*Page, error) {
	subreddit = strings.TrimSpace(subreddit)
	w := pagination.NewWindow(page, s.pageSize())

	var rows []*entity.Story
	if !w.Empty {
		var err error
		rows, err = s.Repo.ListPage(ctx, repository.StoryFilter{Subreddit: subreddit}, w.Offset, w.Fetch)
		if err != nil {
			return nil, fmt.Errorf("list stories: %w", err)
		}
	}

	items, hasNext := pagination.Trim(rows, w)
	return &Page{
		Items:     items,
		Metadata:  pagination.NewMetadata(w.Page, hasNext),
		Subreddit: subreddit,
	}, nil
}

// ListAdmin returns page of the moderation listing across all subreddits.
func (s *Service) ListAdmin(ctx context.Context, page int) (*Page, error) {
	w := pagination.NewWindow(page, s.adminPageSize())

	var rows []*entity.Story
	if !w.Empty {
		var err error
		rows, err = s.Repo.ListPage(ctx, repository.StoryFilter{}, w.Offset, w.Fetch)
		if err != nil {
			return nil, fmt.Errorf("list admin stories: %w", err)
		}
	}

	items, hasNext := pagination.Trim(rows, w)
	return &Page{Items: items, Metadata: pagination.NewMetadata(w.Page, hasNext)}, nil
}

// GetBySlug returns the story with the exact slug.
// Returns ErrStoryNotFound when no story matches or no database is configured.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*entity.Story, error) {
	if slug == "" {
		return nil, ErrStoryNotFound
	}
	st, err := s.Repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get story by slug: %w", err)
	}
	if st == nil {
		return nil, ErrStoryNotFound
	}
	return st, nil
}

// Count returns the number of stored stories.
func (s *Service) Count(ctx context.Context) (int64, error) {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count stories: %w", err)
	}
	return n, nil
}

// Delete removes a story by ID.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidStoryID
	}
	ok, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete story: %w", err)
	}
	if !ok {
		return ErrStoryNotFound
	}
	return nil
}

// Recent returns up to limit slugs, newest first, for the sitemap.
func (s *Service) Recent(ctx context.Context, limit int) ([]repository.SitemapEntry, error) {
	entries, err := s.Repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent stories: %w", err)
	}
	return entries, nil
}

func (s *Service) pageSize() int {
	if s.Pagination.PageSize > 0 {
		return s.Pagination.PageSize
	}
	return pagination.DefaultConfig().PageSize
}

func (s *Service) adminPageSize() int {
	if s.Pagination.AdminPageSize > 0 {
		return s.Pagination.AdminPageSize
	}
	return pagination.DefaultConfig().AdminPageSize
}
