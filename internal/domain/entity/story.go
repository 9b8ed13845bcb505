// Package entity defines the core domain entities of the story site.
// It contains Story and Subreddit along with slug generation and the
// validation rules shared by the admin and ingestion paths.
package entity

import "time"

// Story is a Reddit post republished by the site.
// Slug is the public lookup key and never changes once assigned.
type Story struct {
	ID          int64
	RedditID    string
	Title       string
	Author      string
	Subreddit   string
	URL         string
	Score       int
	NumComments int
	CreatedAt   time.Time
	Content     string
	Slug        string
}

// Excerpt returns the first n runes of the content, or the title when the
// story has no body. Used for page descriptions.
func (s *Story) Excerpt(n int) string {
	if s.Content == "" {
		return s.Title
	}
	runes := []rune(s.Content)
	if len(runes) <= n {
		return s.Content
	}
	return string(runes[:n])
}

// Subreddit is a curated source the ingestion worker pulls stories from.
type Subreddit struct {
	Name      string
	Enabled   bool
	CreatedAt time.Time
}
