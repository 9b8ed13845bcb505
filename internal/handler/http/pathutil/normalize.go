// Package pathutil maps request paths to stable route templates and parses
// path parameters.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns are evaluated in order; more specific patterns come first.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/story/[^/]+$`), Template: "/story/:slug"},

	{Pattern: regexp.MustCompile(`^/admin/stories/[^/]+$`), Template: "/admin/stories/:id"},
	{Pattern: regexp.MustCompile(`^/admin/subreddits/[^/]+/toggle$`), Template: "/admin/subreddits/:name/toggle"},
	{Pattern: regexp.MustCompile(`^/admin/subreddits/[^/]+$`), Template: "/admin/subreddits/:name"},
}

// NormalizePath converts dynamic URL paths to route templates so metric
// labels stay bounded.
//
// Examples:
//
//	NormalizePath("/story/til-octopuses-abc123")   // "/story/:slug"
//	NormalizePath("/admin/stories/42")             // "/admin/stories/:id"
//	NormalizePath("/admin/subreddits/TIFU/toggle") // "/admin/subreddits/:name/toggle"
//	NormalizePath("/load-more-stories?page=3")     // "/load-more-stories"
//	NormalizePath("/health/")                      // "/health"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	return path
}
