// Package ingest pulls recent posts from the configured subreddits and
// upserts them as stories.
package ingest

import "errors"

// ErrNoSubreddits indicates that neither the database nor the fallback list
// named any subreddit to crawl.
var ErrNoSubreddits = errors.New("no subreddits configured")
