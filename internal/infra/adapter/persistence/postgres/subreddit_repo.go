package postgres

import (
	"context"
	"fmt"

	"redditxstory/internal/domain/entity"
	"redditxstory/internal/infra/db"
	"redditxstory/internal/repository"
)

type SubredditRepo struct {
	store *db.Store
}

func NewSubredditRepo(store *db.Store) repository.SubredditRepository {
	return &SubredditRepo{store: store}
}

func (repo *SubredditRepo) List(ctx context.Context) ([]*entity.Subreddit, error) {
	const query = `SELECT name, enabled, created_at FROM subreddits ORDER BY name`

	var subs []*entity.Subreddit
	if _, err := repo.store.Query(ctx, func(r db.RowScanner) error {
		var s entity.Subreddit
		if err := r.Scan(&s.Name, &s.Enabled, &s.CreatedAt); err != nil {
			return err
		}
		subs = append(subs, &s)
		return nil
	}, query); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return subs, nil
}

func (repo *SubredditRepo) ListEnabledNames(ctx context.Context) ([]string, error) {
	const query = `SELECT name FROM subreddits WHERE enabled = TRUE ORDER BY name`

	var names []string
	if _, err := repo.store.Query(ctx, func(r db.RowScanner) error {
		var name string
		if err := r.Scan(&name); err != nil {
			return err
		}
		names = append(names, name)
		return nil
	}, query); err != nil {
		return nil, fmt.Errorf("ListEnabledNames: %w", err)
	}
	return names, nil
}

func (repo *SubredditRepo) Upsert(ctx context.Context, name string) error {
	const query = `INSERT INTO subreddits (name, enabled) VALUES ($1, TRUE)
ON CONFLICT (name) DO UPDATE SET enabled = TRUE`

	if _, err := repo.store.Exec(ctx, query, name); err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	return nil
}

func (repo *SubredditRepo) Toggle(ctx context.Context, name string) (bool, error) {
	const query = `UPDATE subreddits SET enabled = NOT enabled WHERE name = $1`

	n, err := repo.store.Exec(ctx, query, name)
	if err != nil {
		return false, fmt.Errorf("Toggle: %w", err)
	}
	return n > 0, nil
}

func (repo *SubredditRepo) Delete(ctx context.Context, name string) (bool, error) {
	const query = `DELETE FROM subreddits WHERE name = $1`

	n, err := repo.store.Exec(ctx, query, name)
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	return n > 0, nil
}
