package entity

import (
	"regexp"
	"strings"
)

// maxSlugBaseLength bounds the title-derived part of a slug.
const maxSlugBaseLength = 120

var (
	slugStripPattern    = regexp.MustCompile(`[^a-zA-Z0-9\s-]`)
	slugCollapsePattern = regexp.MustCompile(`[\s_-]+`)
)

// Slugify converts a title into a URL-safe slug base.
//
// Rules:
//   - characters outside [a-zA-Z0-9], whitespace and '-' are dropped
//   - the result is trimmed and lowercased
//   - runs of whitespace, '_' and '-' collapse to a single '-'
//   - the result is truncated to 120 characters
//
// Examples:
//
//	Slugify("TIL: Octopuses have 3 hearts!") // "til-octopuses-have-3-hearts"
//	Slugify("  Hello   World  ")             // "hello-world"
func Slugify(title string) string {
	s := slugStripPattern.ReplaceAllString(title, "")
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugCollapsePattern.ReplaceAllString(s, "-")
	if len(s) > maxSlugBaseLength {
		s = s[:maxSlugBaseLength]
	}
	return s
}

// StorySlug builds the unique slug for a story.
// The Reddit ID suffix keeps slugs unique across identical titles.
func StorySlug(title, redditID string) string {
	return Slugify(title) + "-" + redditID
}
