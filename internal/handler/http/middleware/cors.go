package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
)

// CORSConfig is the cross-origin policy for the presentation layer that
// renders the JSON listings.
type CORSConfig struct {
	// AllowedOrigins is an exact-match whitelist, e.g. "https://example.com".
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	// MaxAge is the preflight cache duration in seconds.
	MaxAge int
	Logger *slog.Logger
}

// LoadCORSConfig reads CORS_ALLOWED_ORIGINS and CORS_MAX_AGE.
// It returns nil when no origins are configured, which disables CORS.
func LoadCORSConfig() (*CORSConfig, error) {
	raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if raw == "" {
		return nil, nil
	}

	cfg := &CORSConfig{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		MaxAge:         86400,
	}

	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if err := validateOrigin(origin); err != nil {
			return nil, err
		}
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
	}
	if len(cfg.AllowedOrigins) == 0 {
		return nil, fmt.Errorf("at least one valid origin must be configured in CORS_ALLOWED_ORIGINS")
	}

	if s := strings.TrimSpace(os.Getenv("CORS_MAX_AGE")); s != "" {
		maxAge, err := strconv.Atoi(s)
		if err != nil || maxAge < 0 {
			return nil, fmt.Errorf("invalid CORS_MAX_AGE %q: must be a non-negative integer", s)
		}
		cfg.MaxAge = maxAge
	}
	return cfg, nil
}

func validateOrigin(origin string) error {
	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("invalid origin URL %q: %w", origin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("origin must use http or https scheme: %s", origin)
	}
	if u.Host == "" {
		return fmt.Errorf("origin must include a host: %s", origin)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("origin must not include path, query or fragment: %s", origin)
	}
	return nil
}

// IsAllowed reports whether origin is on the whitelist.
func (c *CORSConfig) IsAllowed(origin string) bool {
	return origin != "" && slices.Contains(c.AllowedOrigins, origin)
}

// CORS echoes allowed origins with credentials and answers preflight
// requests with 204. Disallowed origins pass through without CORS
// headers so the browser blocks the response.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(config.AllowedMethods, ", ")
	headers := strings.Join(config.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(config.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.IsAllowed(origin) {
				if config.Logger != nil {
					config.Logger.Warn("CORS: origin not allowed",
						slog.String("origin", origin),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
					)
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
