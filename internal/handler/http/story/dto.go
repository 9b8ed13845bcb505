package story

import (
	"time"

	"redditxstory/internal/domain/entity"
	storyUC "redditxstory/internal/usecase/story"
)

// DTO is the public JSON form of a story.
type DTO struct {
	ID          int64     `json:"id"`
	RedditID    string    `json:"reddit_id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Subreddit   string    `json:"subreddit"`
	URL         string    `json:"url"`
	Score       int       `json:"score"`
	NumComments int       `json:"num_comments"`
	CreatedAt   time.Time `json:"created_at"`
	Content     string    `json:"content,omitempty"`
	Excerpt     string    `json:"excerpt"`
	Slug        string    `json:"slug"`
}

// PageDTO is one page of a story listing.
type PageDTO struct {
	Items     []DTO  `json:"items"`
	HasNext   bool   `json:"has_next"`
	Page      int    `json:"page"`
	NextPage  *int   `json:"next_page,omitempty"`
	Subreddit string `json:"subreddit,omitempty"`
}

// excerptLength matches the description length used on story pages.
const excerptLength = 160

// NewDTO converts a story. Listing entries omit the body.
func NewDTO(s *entity.Story, withContent bool) DTO {
	d := DTO{
		ID:          s.ID,
		RedditID:    s.RedditID,
		Title:       s.Title,
		Author:      s.Author,
		Subreddit:   s.Subreddit,
		URL:         s.URL,
		Score:       s.Score,
		NumComments: s.NumComments,
		CreatedAt:   s.CreatedAt,
		Excerpt:     s.Excerpt(excerptLength),
		Slug:        s.Slug,
	}
	if withContent {
		d.Content = s.Content
	}
	return d
}

// NewPageDTO converts a listing page.
func NewPageDTO(p *storyUC.Page) PageDTO {
	items := make([]DTO, 0, len(p.Items))
	for _, s := range p.Items {
		items = append(items, NewDTO(s, false))
	}
	return PageDTO{
		Items:     items,
		HasNext:   p.HasNext,
		Page:      p.Page,
		NextPage:  p.NextPage,
		Subreddit: p.Subreddit,
	}
}
