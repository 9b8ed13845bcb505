package pathutil

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when an ID path parameter is not a positive integer.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses a positive int64 ID taken from a path parameter.
//
// Example:
//
//	id, err := ParseID(r.PathValue("id"))
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
