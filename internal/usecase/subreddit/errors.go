// Package subreddit provides the use cases for curating the subreddits the
// ingestion worker reads from.
package subreddit

import "errors"

// ErrSubredditNotFound indicates that the named subreddit is not configured.
var ErrSubredditNotFound = errors.New("subreddit not found")
