package pagination

import (
	"net/http"
	"strconv"
	"strings"
)

// Params represents listing query parameters from an HTTP request.
type Params struct {
	Page      int    // 1-based page number
	Subreddit string // Empty means all subreddits
}

// ClampPage returns page, or 1 when page is not positive.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ParsePage parses a raw page value.
// Absent, non-numeric and non-positive values yield def, itself clamped to 1.
//
// Examples:
//   - ParsePage("3", 1)   -> 3
//   - ParsePage("", 2)    -> 2
//   - ParsePage("abc", 1) -> 1
//   - ParsePage("-4", 1)  -> 1
func ParsePage(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ClampPage(def)
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return ClampPage(def)
	}
	return page
}

// ParseQueryParams reads page and subreddit from the request query string.
// It never fails; bad page values fall back to defaultPage.
//
// Query parameters:
//   - page: Page number
//   - subreddit: Optional subreddit filter
func ParseQueryParams(r *http.Request, defaultPage int) Params {
	q := r.URL.Query()
	return Params{
		Page:      ParsePage(q.Get("page"), defaultPage),
		Subreddit: strings.TrimSpace(q.Get("subreddit")),
	}
}
