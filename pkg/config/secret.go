package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

// MinSecretLength is the shortest accepted HS256 signing secret.
const MinSecretLength = 32

// ErrWeakJWTSecret is returned for signing secrets shorter than MinSecretLength.
var ErrWeakJWTSecret = fmt.Errorf("JWT secret must be at least %d characters", MinSecretLength)

// ValidateSecret checks that secret is long enough to sign tokens.
func ValidateSecret(secret string) error {
	if len(secret) < MinSecretLength {
		return ErrWeakJWTSecret
	}
	return nil
}

// RandomSecret returns a hex-encoded secret of 2*MinSecretLength characters.
func RandomSecret() (string, error) {
	buf := make([]byte, MinSecretLength)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Join(errors.New("failed to generate secret"), err)
	}
	return hex.EncodeToString(buf), nil
}
