package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()
	iss, err := NewIssuer(testSecret, time.Hour)
	require.NoError(t, err)
	return iss
}

func TestNewIssuer_RejectsShortSecret(t *testing.T) {
	_, err := NewIssuer("short", 0)
	assert.ErrorIs(t, err, ErrWeakJWTSecret)
}

func TestNewIssuer_DefaultTTL(t *testing.T) {
	iss, err := NewIssuer(testSecret, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, iss.TTL())
}

func TestIssuer_RoundTrip(t *testing.T) {
	iss := newTestIssuer(t)

	token, exp, err := iss.IssueToken("admin@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	sub, err := iss.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", sub)
}

func TestIssuer_Expired(t *testing.T) {
	iss := newTestIssuer(t)
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := iss.IssueToken("admin@example.com")
	require.NoError(t, err)

	iss.now = time.Now
	_, err = iss.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestIssuer_Verify_Rejects(t *testing.T) {
	iss := newTestIssuer(t)
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	sign := func(method jwt.SigningMethod, key any, claims jwt.Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", ErrMissingToken},
		{"garbage", "not.a.jwt", ErrInvalidToken},
		{"wrong secret", sign(jwt.SigningMethodHS256, []byte(strings.Repeat("x", 32)),
			Claims{Role: RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{Subject: "a", ExpiresAt: exp}}), ErrInvalidToken},
		{"wrong alg", sign(jwt.SigningMethodHS512, []byte(testSecret),
			Claims{Role: RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{Subject: "a", ExpiresAt: exp}}), ErrInvalidToken},
		{"no exp", sign(jwt.SigningMethodHS256, []byte(testSecret),
			Claims{Role: RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{Subject: "a"}}), ErrInvalidToken},
		{"not admin", sign(jwt.SigningMethodHS256, []byte(testSecret),
			Claims{Role: "viewer", RegisteredClaims: jwt.RegisteredClaims{Subject: "a", ExpiresAt: exp}}), ErrNotAdmin},
		{"no subject", sign(jwt.SigningMethodHS256, []byte(testSecret),
			Claims{Role: RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}}), ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := iss.Verify(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
