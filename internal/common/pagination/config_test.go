package pagination_test

import (
	"testing"

	"redditxstory/internal/common/pagination"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	config := pagination.DefaultConfig()

	if config.PageSize != 10 {
		t.Errorf("DefaultConfig() PageSize = %d, want 10", config.PageSize)
	}
	if config.AdminPageSize != 25 {
		t.Errorf("DefaultConfig() AdminPageSize = %d, want 25", config.AdminPageSize)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("admin page size from env", func(t *testing.T) {
		t.Setenv("ADMIN_PAGE_SIZE", "50")

		config := pagination.LoadFromEnv()

		if config.PageSize != pagination.PublicPageSize {
			t.Errorf("LoadFromEnv() PageSize = %d, want %d", config.PageSize, pagination.PublicPageSize)
		}
		if config.AdminPageSize != 50 {
			t.Errorf("LoadFromEnv() AdminPageSize = %d, want 50", config.AdminPageSize)
		}
	})

	t.Run("with no env vars (fallback to defaults)", func(t *testing.T) {
		t.Setenv("ADMIN_PAGE_SIZE", "")

		config := pagination.LoadFromEnv()

		if config != pagination.DefaultConfig() {
			t.Errorf("LoadFromEnv() = %+v, want %+v", config, pagination.DefaultConfig())
		}
	})

	t.Run("public page size ignores env", func(t *testing.T) {
		t.Setenv("PAGE_SIZE", "15")
		t.Setenv("ADMIN_PAGE_SIZE", "lots")

		config := pagination.LoadFromEnv()

		if config.PageSize != 10 {
			t.Errorf("LoadFromEnv() PageSize = %d, want 10", config.PageSize)
		}
		if config.AdminPageSize != 25 {
			t.Errorf("LoadFromEnv() AdminPageSize = %d, want 25", config.AdminPageSize)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  pagination.Config
		wantErr bool
	}{
		{name: "valid", config: pagination.Config{PageSize: 10, AdminPageSize: 25}},
		{name: "zero page size", config: pagination.Config{PageSize: 0, AdminPageSize: 25}, wantErr: true},
		{name: "negative admin size", config: pagination.Config{PageSize: 10, AdminPageSize: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
