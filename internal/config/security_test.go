package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "security.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadSecurityConfig(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		wantErr  string
		validate func(*testing.T, *SecurityConfig)
	}{
		{
			name: "full file",
			yaml: `security:
  admin:
    min_password_length: 12
    weak_passwords: ["letmein"]
  jwt:
    expiry_hours: 24
  login:
    per_minute: 10
    burst: 3
`,
			validate: func(t *testing.T, c *SecurityConfig) {
				assert.Equal(t, 12, c.Security.Admin.MinPasswordLength)
				assert.Equal(t, []string{"letmein"}, c.Security.Admin.WeakPasswords)
				assert.Equal(t, 24, c.Security.JWT.ExpiryHours)
				assert.Equal(t, 10, c.Security.Login.PerMinute)
				assert.Equal(t, 3, c.Security.Login.Burst)
			},
		},
		{
			name: "partial file keeps defaults",
			yaml: "security:\n  jwt:\n    expiry_hours: 1\n",
			validate: func(t *testing.T, c *SecurityConfig) {
				assert.Equal(t, 1, c.Security.JWT.ExpiryHours)
				assert.Equal(t, 8, c.Security.Admin.MinPasswordLength)
				assert.Equal(t, 5, c.Security.Login.PerMinute)
			},
		},
		{
			name:    "short minimum",
			yaml:    "security:\n  admin:\n    min_password_length: 4\n",
			wantErr: "min_password_length",
		},
		{
			name:    "zero expiry",
			yaml:    "security:\n  jwt:\n    expiry_hours: 0\n",
			wantErr: "expiry_hours",
		},
		{
			name:    "malformed",
			yaml:    "security: [",
			wantErr: "failed to parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := LoadSecurityConfig(writeFile(t, tt.yaml))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.validate(t, c)
		})
	}
}

func TestLoadSecurityConfig_MissingFile(t *testing.T) {
	_, err := LoadSecurityConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestCheckPassword(t *testing.T) {
	c := DefaultSecurityConfig()

	assert.NoError(t, c.CheckPassword("a-long-unique-pass"))
	assert.ErrorContains(t, c.CheckPassword("short"), "at least 8")
	assert.ErrorContains(t, c.CheckPassword("Password123"), "weak")
}
