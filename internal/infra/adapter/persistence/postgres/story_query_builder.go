// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"

	"redditxstory/internal/repository"
)

// storyColumns is the select list scanned by scanStory.
const storyColumns = `id, COALESCE(reddit_id, ''), title, COALESCE(author, ''), subreddit,
       COALESCE(url, ''), score, num_comments, created_at, COALESCE(content, ''), slug`

// storyOrder is the listing order. id breaks created_at ties so pages never
// overlap or skip rows.
const storyOrder = `ORDER BY created_at DESC, id DESC`

// StoryQueryBuilder builds story listing queries with numbered placeholders.
type StoryQueryBuilder struct{}

// NewStoryQueryBuilder creates a new query builder instance.
func NewStoryQueryBuilder() *StoryQueryBuilder {
	return &StoryQueryBuilder{}
}

// BuildWhereClause returns the WHERE clause for filter, or "" when the filter
// is empty. Placeholders start at $1.
func (qb *StoryQueryBuilder) BuildWhereClause(filter repository.StoryFilter) (clause string, args []any) {
	var conditions []string
	paramIndex := 1

	if filter.Subreddit != "" {
		conditions = append(conditions, fmt.Sprintf("subreddit = $%d", paramIndex))
		args = append(args, filter.Subreddit)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// BuildListQuery returns a SELECT for one listing window.
//
// Example (subreddit filter, offset 10, limit 11):
//
//	SELECT ... FROM stories WHERE subreddit = $1
//	ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3
//	args: ["nosleep", 11, 10]
func (qb *StoryQueryBuilder) BuildListQuery(filter repository.StoryFilter, offset, limit int) (string, []any) {
	where, args := qb.BuildWhereClause(filter)
	n := len(args)

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(storyColumns)
	sb.WriteString("\nFROM stories")
	if where != "" {
		sb.WriteString("\n")
		sb.WriteString(where)
	}
	sb.WriteString("\n")
	sb.WriteString(storyOrder)
	fmt.Fprintf(&sb, "\nLIMIT $%d OFFSET $%d", n+1, n+2)

	return sb.String(), append(args, limit, offset)
}

// BuildUpsertQuery returns a multi-row INSERT for rows stories.
// Existing rows keep their slug, author, url and created_at; content is only
// replaced by a non-empty value.
func (qb *StoryQueryBuilder) BuildUpsertQuery(rows int) string {
	const cols = 10
	var sb strings.Builder
	sb.WriteString(`INSERT INTO stories (reddit_id, title, subreddit, author, url, score, num_comments, created_at, content, slug)
VALUES `)
	for i := 0; i < rows; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for c := 1; c <= cols; c++ {
			if c > 1 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", i*cols+c)
		}
		sb.WriteString(")")
	}
	sb.WriteString(`
ON CONFLICT (reddit_id) DO UPDATE SET
    title = EXCLUDED.title,
    score = EXCLUDED.score,
    num_comments = EXCLUDED.num_comments,
    content = COALESCE(NULLIF(EXCLUDED.content, ''), stories.content)`)
	return sb.String()
}
