package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"redditxstory/internal/domain/entity"
	"redditxstory/internal/infra/db"
	"redditxstory/internal/repository"
)

// maxUpsertBatch keeps a single INSERT under Postgres' 65535 parameter limit.
const maxUpsertBatch = 500

type StoryRepo struct {
	store *db.Store
	qb    *StoryQueryBuilder
}

func NewStoryRepo(store *db.Store) repository.StoryRepository {
	return &StoryRepo{store: store, qb: NewStoryQueryBuilder()}
}

func scanStory(dst *[]*entity.Story) db.ScanFunc {
	return func(r db.RowScanner) error {
		var s entity.Story
		if err := r.Scan(
			&s.ID, &s.RedditID, &s.Title, &s.Author, &s.Subreddit,
			&s.URL, &s.Score, &s.NumComments, &s.CreatedAt, &s.Content, &s.Slug,
		); err != nil {
			return err
		}
		*dst = append(*dst, &s)
		return nil
	}
}

func (repo *StoryRepo) ListPage(ctx context.Context, filter repository.StoryFilter, offset, limit int) ([]*entity.Story, error) {
	query, args := repo.qb.BuildListQuery(filter, offset, limit)

	stories := make([]*entity.Story, 0, limit)
	if _, err := repo.store.Query(ctx, scanStory(&stories), query, args...); err != nil {
		return nil, fmt.Errorf("ListPage: %w", err)
	}
	return stories, nil
}

func (repo *StoryRepo) GetBySlug(ctx context.Context, slug string) (*entity.Story, error) {
	const query = `SELECT ` + storyColumns + `
FROM stories
WHERE slug = $1
LIMIT 1`

	var stories []*entity.Story
	found, err := repo.store.QueryRow(ctx, scanStory(&stories), query, slug)
	if err != nil {
		return nil, fmt.Errorf("GetBySlug: %w", err)
	}
	if !found {
		return nil, nil
	}
	return stories[0], nil
}

func (repo *StoryRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM stories`

	var count int64
	if _, err := repo.store.QueryRow(ctx, func(r db.RowScanner) error {
		return r.Scan(&count)
	}, query); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *StoryRepo) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM stories WHERE id = $1`

	n, err := repo.store.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	return n > 0, nil
}

func (repo *StoryRepo) UpsertBatch(ctx context.Context, stories []*entity.Story) (int64, error) {
	stories = dedupeByRedditID(stories)

	var total int64
	for start := 0; start < len(stories); start += maxUpsertBatch {
		end := min(start+maxUpsertBatch, len(stories))
		chunk := stories[start:end]

		args := make([]any, 0, len(chunk)*10)
		for _, s := range chunk {
			args = append(args,
				s.RedditID, s.Title, s.Subreddit, s.Author, s.URL,
				s.Score, s.NumComments, s.CreatedAt, s.Content, s.Slug,
			)
		}

		n, err := repo.store.Exec(ctx, repo.qb.BuildUpsertQuery(len(chunk)), args...)
		if err != nil {
			return total, fmt.Errorf("UpsertBatch: %w", err)
		}
		total += n
	}
	return total, nil
}

// dedupeByRedditID keeps the last occurrence of each reddit_id; a single
// INSERT ... ON CONFLICT cannot touch the same row twice.
func dedupeByRedditID(stories []*entity.Story) []*entity.Story {
	index := make(map[string]int, len(stories))
	out := make([]*entity.Story, 0, len(stories))
	for _, s := range stories {
		if i, ok := index[s.RedditID]; ok {
			out[i] = s
			continue
		}
		index[s.RedditID] = len(out)
		out = append(out, s)
	}
	return out
}

func (repo *StoryRepo) ExistingRedditIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(ids) == 0 {
		return result, nil
	}

	const query = `SELECT reddit_id FROM stories WHERE reddit_id = ANY($1)`
	if _, err := repo.store.Query(ctx, func(r db.RowScanner) error {
		var id string
		if err := r.Scan(&id); err != nil {
			return err
		}
		result[id] = true
		return nil
	}, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("ExistingRedditIDs: %w", err)
	}
	return result, nil
}

func (repo *StoryRepo) ListRecent(ctx context.Context, limit int) ([]repository.SitemapEntry, error) {
	const query = `SELECT slug, created_at FROM stories ` + storyOrder + ` LIMIT $1`

	entries := make([]repository.SitemapEntry, 0, limit)
	if _, err := repo.store.Query(ctx, func(r db.RowScanner) error {
		var e repository.SitemapEntry
		if err := r.Scan(&e.Slug, &e.CreatedAt); err != nil {
			return err
		}
		entries = append(entries, e)
		return nil
	}, query, limit); err != nil {
		return nil, fmt.Errorf("ListRecent: %w", err)
	}
	return entries, nil
}
