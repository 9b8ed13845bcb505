// Package pagination computes page bounds for the story listings.
//
// Listings never run a COUNT query. Instead each page asks the store for one
// row more than it shows; the presence of that extra row is what reports a
// next page.
package pagination

import (
	"fmt"

	envconfig "redditxstory/pkg/config"
)

// Config holds page sizes for the public and admin listings.
type Config struct {
	PageSize      int // Stories per public page (10)
	AdminPageSize int // Stories per admin page (25)
}

// DefaultConfig returns the page sizes the site has always used.
func DefaultConfig() Config {
	return Config{
		PageSize:      PublicPageSize,
		AdminPageSize: 25,
	}
}

// PublicPageSize is the fixed number of stories on a public listing page.
const PublicPageSize = 10

// LoadFromEnv loads pagination config from environment variables.
// Only the admin page size is configurable:
//   - ADMIN_PAGE_SIZE: Stories per admin listing page
//
// Falls back to DefaultConfig() values for unset or unparsable variables.
func LoadFromEnv() Config {
	def := DefaultConfig()
	return Config{
		PageSize:      PublicPageSize,
		AdminPageSize: envconfig.GetEnvInt("ADMIN_PAGE_SIZE", def.AdminPageSize),
	}
}

// Validate checks that both page sizes are usable.
func (c Config) Validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if c.AdminPageSize < 1 {
		return fmt.Errorf("ADMIN_PAGE_SIZE must be positive, got %d", c.AdminPageSize)
	}
	return nil
}
