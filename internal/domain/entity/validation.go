package entity

import (
	"fmt"
	"regexp"
	"strings"
)

// maxSubredditNameLength follows Reddit's own limit on community names.
const maxSubredditNameLength = 21

// subredditNamePattern matches the characters Reddit allows in community names.
var subredditNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// NormalizeSubredditName trims whitespace and an optional "r/" or "/r/" prefix.
func NormalizeSubredditName(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.TrimPrefix(name, "/")
	if strings.HasPrefix(strings.ToLower(name), "r/") {
		name = name[2:]
	}
	return strings.TrimSpace(name)
}

// ValidateSubredditName checks that name is usable as a subreddit key.
// Returns a ValidationError describing the first rule that fails.
func ValidateSubredditName(name string) error {
	if name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if len(name) > maxSubredditNameLength {
		return &ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("must not exceed %d characters", maxSubredditNameLength),
		}
	}
	if !subredditNamePattern.MatchString(name) {
		return &ValidationError{Field: "name", Message: "must contain only letters, digits and underscores"}
	}
	return nil
}

// Validate checks the fields a story needs before it can be stored.
func (s *Story) Validate() error {
	if s.RedditID == "" {
		return &ValidationError{Field: "reddit_id", Message: "is required"}
	}
	if strings.TrimSpace(s.Title) == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if s.Subreddit == "" {
		return &ValidationError{Field: "subreddit", Message: "is required"}
	}
	if s.Slug == "" {
		return &ValidationError{Field: "slug", Message: "is required"}
	}
	if s.CreatedAt.IsZero() {
		return &ValidationError{Field: "created_at", Message: "is required"}
	}
	if s.Score < 0 || s.NumComments < 0 {
		return &ValidationError{Field: "score", Message: "must be non-negative"}
	}
	return nil
}
