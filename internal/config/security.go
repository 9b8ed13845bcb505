// Package config loads and validates the API server configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SecurityConfig is the optional admin security policy file.
type SecurityConfig struct {
	Security struct {
		Admin struct {
			MinPasswordLength int      `yaml:"min_password_length"`
			WeakPasswords     []string `yaml:"weak_passwords"`
		} `yaml:"admin"`
		JWT struct {
			ExpiryHours int `yaml:"expiry_hours"`
		} `yaml:"jwt"`
		Login struct {
			PerMinute int `yaml:"per_minute"`
			Burst     int `yaml:"burst"`
		} `yaml:"login"`
	} `yaml:"security"`
}

// DefaultSecurityConfig returns the policy used when no file is configured.
func DefaultSecurityConfig() *SecurityConfig {
	c := &SecurityConfig{}
	c.Security.Admin.MinPasswordLength = 8
	c.Security.Admin.WeakPasswords = []string{"admin", "admin123", "password", "password123", "changeme"}
	c.Security.JWT.ExpiryHours = 7 * 24
	c.Security.Login.PerMinute = 5
	c.Security.Login.Burst = 5
	return c
}

// LoadSecurityConfig reads a policy file. Keys absent from the file keep
// their defaults.
func LoadSecurityConfig(path string) (*SecurityConfig, error) {
	// #nosec G304 -- path comes from SECURITY_CONFIG, set by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultSecurityConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return config, nil
}

// Validate checks the policy values.
func (c *SecurityConfig) Validate() error {
	if c.Security.Admin.MinPasswordLength < 8 {
		return fmt.Errorf("min_password_length must be at least 8")
	}
	if c.Security.JWT.ExpiryHours <= 0 {
		return fmt.Errorf("jwt expiry_hours must be positive")
	}
	if c.Security.Login.PerMinute <= 0 || c.Security.Login.Burst <= 0 {
		return fmt.Errorf("login per_minute and burst must be positive")
	}
	return nil
}

// CheckPassword reports whether password satisfies the admin policy.
func (c *SecurityConfig) CheckPassword(password string) error {
	if len(password) < c.Security.Admin.MinPasswordLength {
		return fmt.Errorf("ADMIN_PASSWORD must be at least %d characters", c.Security.Admin.MinPasswordLength)
	}
	for _, weak := range c.Security.Admin.WeakPasswords {
		if strings.EqualFold(password, weak) {
			return fmt.Errorf("ADMIN_PASSWORD is a known weak password")
		}
	}
	return nil
}
