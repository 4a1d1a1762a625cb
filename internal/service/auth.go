package service

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// AuthService checks the shared key callers send in the request body
type AuthService struct {
	secret string
}

// NewAuthService creates a new AuthService. The secret may be the plain key or a bcrypt
// hash of it.
func NewAuthService(secret string) *AuthService {
	return &AuthService{secret: secret}
}

// Authorize returns ErrUnauthorized unless key matches the configured secret.
// An unset secret never matches.
func (s *AuthService) Authorize(key string) error {
	if s.secret == "" || key == "" {
		return ErrUnauthorized
	}

	if isBcryptHash(s.secret) {
		if err := bcrypt.CompareHashAndPassword([]byte(s.secret), []byte(key)); err != nil {
			return ErrUnauthorized
		}
		return nil
	}

	if subtle.ConstantTimeCompare([]byte(s.secret), []byte(key)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
