// Package story provides the listing and lookup use cases for stories,
// plus the moderation operations used by the admin panel.
package story

import "errors"

// Sentinel errors for story use case operations.
var (
	// ErrStoryNotFound indicates that no story matches the requested slug or ID.
	ErrStoryNotFound = errors.New("story not found")

	// ErrInvalidStoryID indicates that a story ID is not a positive integer.
	ErrInvalidStoryID = errors.New("invalid story ID")
)
