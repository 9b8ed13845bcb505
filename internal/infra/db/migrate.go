package db

import (
	"database/sql"
	_ "embed"
)

//go:embed seeds/subreddits.sql
var seedSubredditsSQL string

// MigrateUp creates the schema if it does not exist and seeds the default
// subreddits. It is safe to run on every start.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS stories (
    id           BIGSERIAL PRIMARY KEY,
    reddit_id    TEXT UNIQUE,
    title        TEXT NOT NULL,
    author       TEXT,
    subreddit    TEXT NOT NULL,
    url          TEXT,
    score        INTEGER NOT NULL DEFAULT 0,
    num_comments INTEGER NOT NULL DEFAULT 0,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    content      TEXT,
    slug         TEXT UNIQUE NOT NULL
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS subreddits (
    name       TEXT PRIMARY KEY,
    enabled    BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// listing order
		`CREATE INDEX IF NOT EXISTS idx_stories_created_at ON stories(created_at DESC, id DESC)`,
		// filtered listing order
		`CREATE INDEX IF NOT EXISTS idx_stories_subreddit_created_at ON stories(subreddit, created_at DESC, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_subreddits_enabled ON subreddits(enabled) WHERE enabled = TRUE`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// existing rows are left untouched
	if _, err := db.Exec(seedSubredditsSQL); err != nil {
		return err
	}

	return nil
}

// MigrateDown drops both tables. All stored stories are lost.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS stories`,
		`DROP TABLE IF EXISTS subreddits`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
