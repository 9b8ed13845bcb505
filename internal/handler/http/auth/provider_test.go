package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticProvider_Validate(t *testing.T) {
	p := NewStaticProvider("Admin@Example.com", "correct horse")

	tests := []struct {
		name     string
		email    string
		password string
		ok       bool
	}{
		{"exact", "admin@example.com", "correct horse", true},
		{"email case and space", "  ADMIN@example.com ", "correct horse", true},
		{"wrong password", "admin@example.com", "battery staple", false},
		{"password is case sensitive", "admin@example.com", "Correct horse", false},
		{"wrong email", "root@example.com", "correct horse", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Validate(tt.email, tt.password)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
			}
		})
	}
}

func TestStaticProvider_Unconfigured(t *testing.T) {
	p := NewStaticProvider("", "")
	assert.ErrorIs(t, p.Validate("", ""), ErrInvalidCredentials)
}
