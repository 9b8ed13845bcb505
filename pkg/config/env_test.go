package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("SITE_NAME", "")
	assert.Equal(t, "Stories", GetEnvString("SITE_NAME", "Stories"))

	t.Setenv("SITE_NAME", "Reddit Stories")
	assert.Equal(t, "Reddit Stories", GetEnvString("SITE_NAME", "Stories"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "unset", value: "", want: 7},
		{name: "plain", value: "50", want: 50},
		{name: "trailing comment", value: "50 # per subreddit", want: 50},
		{name: "surrounding spaces", value: "  12 ", want: 12},
		{name: "negative", value: "-3", want: -3},
		{name: "garbage", value: "many", want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DAYS_BACK", tt.value)
			assert.Equal(t, tt.want, GetEnvInt("DAYS_BACK", 7))
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "", want: true},
		{value: "false", want: false},
		{value: "NO", want: false},
		{value: "1", want: true},
		{value: "Yes", want: true},
		{value: "maybe", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("PGSSL", tt.value)
			assert.Equal(t, tt.want, GetEnvBool("PGSSL", true))
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("CRAWL_TIMEOUT", "90s")
	assert.Equal(t, 90*time.Second, GetEnvDuration("CRAWL_TIMEOUT", time.Minute))

	t.Setenv("CRAWL_TIMEOUT", "ninety")
	assert.Equal(t, time.Minute, GetEnvDuration("CRAWL_TIMEOUT", time.Minute))
}

func TestGetEnvStringList(t *testing.T) {
	def := []string{"AskReddit"}

	t.Setenv("SUBREDDITS", "")
	assert.Equal(t, def, GetEnvStringList("SUBREDDITS", def))

	t.Setenv("SUBREDDITS", " TIFU, ,nosleep ,")
	assert.Equal(t, []string{"TIFU", "nosleep"}, GetEnvStringList("SUBREDDITS", def))

	t.Setenv("SUBREDDITS", " , ")
	assert.Equal(t, def, GetEnvStringList("SUBREDDITS", def))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("DOTENV_ONLY=from-file\nDOTENV_SET=from-file\n"), 0o600))

	t.Setenv("DOTENV_SET", "from-process")
	t.Setenv("DOTENV_ONLY", "")
	require.NoError(t, os.Unsetenv("DOTENV_ONLY"))
	t.Cleanup(func() { _ = os.Unsetenv("DOTENV_ONLY") })

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))

	assert.Equal(t, "from-file", os.Getenv("DOTENV_ONLY"))
	assert.Equal(t, "from-process", os.Getenv("DOTENV_SET"))
}

func TestValidateDurationRange(t *testing.T) {
	assert.NoError(t, ValidateDurationRange(time.Minute, time.Second, time.Hour))
	assert.Error(t, ValidateDurationRange(time.Millisecond, time.Second, time.Hour))
	assert.Error(t, ValidateDurationRange(2*time.Hour, time.Second, time.Hour))
	assert.Error(t, ValidateDurationRange(time.Minute, time.Hour, time.Second))
	assert.Error(t, ValidatePositiveDuration(0))
}
