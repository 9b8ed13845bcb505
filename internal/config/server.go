package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	pkgconfig "redditxstory/pkg/config"
)

// ServerConfig holds the API server settings read from the environment.
type ServerConfig struct {
	Port            int
	SiteName        string
	SiteURL         string
	AdminEmail      string
	AdminPassword   string
	JWTSecret       string
	CookieSecure    bool
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
	TraceSample     float64
	Security        *SecurityConfig
}

// AdminEnabled reports whether admin credentials are configured.
func (c *ServerConfig) AdminEnabled() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}

// TokenTTL returns the admin session lifetime.
func (c *ServerConfig) TokenTTL() time.Duration {
	return time.Duration(c.Security.Security.JWT.ExpiryHours) * time.Hour
}

// LoginInterval returns the refill interval of the per-IP login limiter.
func (c *ServerConfig) LoginInterval() time.Duration {
	return time.Minute / time.Duration(c.Security.Security.Login.PerMinute)
}

// LoadServerConfig reads the server configuration.
//
// Environment variables:
//   - PORT (default 3000)
//   - SITE_NAME (default "RedditXStory")
//   - SITE_URL (default http://localhost:<PORT>, trailing slash removed)
//   - ADMIN_EMAIL, ADMIN_PASSWORD (admin panel disabled when either is empty)
//   - JWT_SECRET (at least 32 characters; required only when admin is enabled,
//     otherwise a random secret is generated)
//   - COOKIE_SECURE (default false)
//   - SHUTDOWN_TIMEOUT (default 10s)
//   - MAX_BODY_BYTES (default 1 MiB)
//   - TRACE_SAMPLE_RATIO (default 1.0)
//   - SECURITY_CONFIG (optional YAML policy file)
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Port:            pkgconfig.GetEnvInt("PORT", 3000),
		SiteName:        pkgconfig.GetEnvString("SITE_NAME", "RedditXStory"),
		AdminEmail:      strings.TrimSpace(pkgconfig.GetEnvString("ADMIN_EMAIL", "")),
		AdminPassword:   pkgconfig.GetEnvString("ADMIN_PASSWORD", ""),
		JWTSecret:       pkgconfig.GetEnvString("JWT_SECRET", ""),
		CookieSecure:    pkgconfig.GetEnvBool("COOKIE_SECURE", false),
		ShutdownTimeout: pkgconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxBodyBytes:    int64(pkgconfig.GetEnvInt("MAX_BODY_BYTES", 1<<20)),
		TraceSample:     1.0,
		Security:        DefaultSecurityConfig(),
	}

	cfg.SiteURL = strings.TrimRight(
		pkgconfig.GetEnvString("SITE_URL", fmt.Sprintf("http://localhost:%d", cfg.Port)), "/")

	if raw := pkgconfig.GetEnvString("TRACE_SAMPLE_RATIO", ""); raw != "" {
		ratio, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("TRACE_SAMPLE_RATIO: %w", err)
		}
		cfg.TraceSample = ratio
	}

	if path := pkgconfig.GetEnvString("SECURITY_CONFIG", ""); path != "" {
		sec, err := LoadSecurityConfig(path)
		if err != nil {
			return nil, err
		}
		cfg.Security = sec
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Without admin credentials no token is ever issued, so a throwaway
	// secret keeps the /admin guard working.
	if !cfg.AdminEnabled() && pkgconfig.ValidateSecret(cfg.JWTSecret) != nil {
		secret, err := pkgconfig.RandomSecret()
		if err != nil {
			return nil, err
		}
		cfg.JWTSecret = secret
	}
	return cfg, nil
}

// Validate checks the loaded values and returns every problem found.
func (c *ServerConfig) Validate() error {
	var errs []error

	if err := pkgconfig.ValidateIntRange(c.Port, 1, 65535); err != nil {
		errs = append(errs, fmt.Errorf("PORT: %w", err))
	}
	if c.AdminEnabled() {
		if err := pkgconfig.ValidateSecret(c.JWTSecret); err != nil {
			errs = append(errs, fmt.Errorf("JWT_SECRET: %w", err))
		}
	}
	if c.AdminPassword != "" {
		if err := c.Security.CheckPassword(c.AdminPassword); err != nil {
			errs = append(errs, err)
		}
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be positive"))
	}
	if c.TraceSample < 0 || c.TraceSample > 1 {
		errs = append(errs, errors.New("TRACE_SAMPLE_RATIO must be between 0 and 1"))
	}
	if !strings.HasPrefix(c.SiteURL, "http://") && !strings.HasPrefix(c.SiteURL, "https://") {
		errs = append(errs, errors.New("SITE_URL must start with http:// or https://"))
	}

	return errors.Join(errs...)
}
