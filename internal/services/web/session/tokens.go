package session

import (
	"context"
	"sync"
	"time"

	"github.com/ourhour/ourhour-web/internal/services/web/backend"
)

// Refresher exchanges a refresh token for new tokens.
type Refresher interface {
	RefreshTokens(ctx context.Context, refreshToken string) (backend.Tokens, error)
}

// TokenSource serves one session's tokens to the authenticated backend
// client and persists refreshed tokens.
type TokenSource struct {
	store     *Store
	refresher Refresher
	id        string

	mu sync.Mutex
}

// Tokens returns the token source for session id.
func (s *Store) Tokens(id string, refresher Refresher) *TokenSource {
	return &TokenSource{store: s, refresher: refresher, id: id}
}

// AccessToken returns the stored access token.
func (t *TokenSource) AccessToken(ctx context.Context) (string, error) {
	rec, err := t.store.Get(ctx, t.id)
	if err != nil {
		return "", backend.ErrNoCredentials
	}
	return rec.AccessToken, nil
}

// Refresh rotates the session tokens once.
func (t *TokenSource) Refresh(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, err := t.store.Get(ctx, t.id)
	if err != nil {
		return "", backend.ErrNoCredentials
	}
	if t.refresher == nil || rec.RefreshToken == "" {
		return "", backend.ErrNoCredentials
	}
	tokens, err := t.refresher.RefreshTokens(ctx, rec.RefreshToken)
	if err != nil {
		return "", err
	}
	rec.AccessToken = tokens.AccessToken
	rec.RefreshToken = tokens.RefreshToken
	if claims, err := ParseClaims(tokens.AccessToken); err == nil && !claims.ExpiresAt.IsZero() {
		rec.AccessExpiresAt = claims.ExpiresAt.UnixMilli()
	}
	if err := t.store.Save(ctx, rec); err != nil {
		return "", err
	}
	return rec.AccessToken, nil
}

// AccessExpired reports whether the access token has expired at now.
func (r Record) AccessExpired(now time.Time) bool {
	return r.AccessExpiresAt > 0 && now.UnixMilli() >= r.AccessExpiresAt
}
