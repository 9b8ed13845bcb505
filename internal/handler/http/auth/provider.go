package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"strings"
)

// ErrInvalidCredentials is returned for any failed login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialProvider checks an admin login.
type CredentialProvider interface {
	Validate(email, password string) error
}

// StaticProvider accepts a single admin account configured at startup.
type StaticProvider struct {
	email    [sha256.Size]byte
	password [sha256.Size]byte
	enabled  bool
}

// NewStaticProvider returns a provider for the given account. With an empty
// email or password every login is rejected.
func NewStaticProvider(email, password string) *StaticProvider {
	email = normalizeEmail(email)
	return &StaticProvider{
		email:    sha256.Sum256([]byte(email)),
		password: sha256.Sum256([]byte(password)),
		enabled:  email != "" && password != "",
	}
}

// Validate compares both fields in constant time. Hashing first keeps the
// comparison independent of input length.
func (p *StaticProvider) Validate(email, password string) error {
	e := sha256.Sum256([]byte(normalizeEmail(email)))
	pw := sha256.Sum256([]byte(password))

	emailOK := subtle.ConstantTimeCompare(e[:], p.email[:])
	passOK := subtle.ConstantTimeCompare(pw[:], p.password[:])

	if !p.enabled || emailOK&passOK != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
