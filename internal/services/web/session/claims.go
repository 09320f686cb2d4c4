package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the access-token fields the web service reads.
type Claims struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

type accessClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

var errMissingSubject = errors.New("access token has no subject")

// ParseClaims reads access-token claims without verifying the signature.
// The backend verifies tokens on every call.
func ParseClaims(token string) (Claims, error) {
	var parsed accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(strings.TrimSpace(token), &parsed); err != nil {
		return Claims{}, fmt.Errorf("parse access token: %w", err)
	}
	if strings.TrimSpace(parsed.Subject) == "" {
		return Claims{}, errMissingSubject
	}
	claims := Claims{UserID: parsed.Subject, Email: parsed.Email}
	if parsed.ExpiresAt != nil {
		claims.ExpiresAt = parsed.ExpiresAt.Time
	}
	return claims, nil
}
