// Package session persists signed-in browser sessions in the pending-record
// backend and exposes them as backend token sources.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ourhour/ourhour-web/internal/services/web/backend"
	"github.com/ourhour/ourhour-web/internal/services/web/pendingstore"
)

const (
	// KeyPrefix namespaces session records in the backend.
	KeyPrefix = "session:"
	// DefaultTTL bounds a session independent of token expiry.
	DefaultTTL = 14 * 24 * time.Hour
)

// ErrNotFound reports a missing or expired session.
var ErrNotFound = errors.New("session not found")

// Record is one signed-in browser session.
type Record struct {
	ID              string `json:"-"`
	UserID          string `json:"userId"`
	Email           string `json:"email,omitempty"`
	AccessToken     string `json:"accessToken"`
	RefreshToken    string `json:"refreshToken"`
	AccessExpiresAt int64  `json:"accessExpiresAt,omitempty"`
	ExpiresAt       int64  `json:"expiresAt"`
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the store clock.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTTL overrides the session lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator overrides session id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// Store reads and writes session records.
type Store struct {
	backend pendingstore.Backend
	ttl     time.Duration
	now     func() time.Time
	newID   func() string
	logger  *zap.Logger
}

// NewStore builds a session store over backend.
func NewStore(b pendingstore.Backend, opts ...Option) *Store {
	s := &Store{
		backend: b,
		ttl:     DefaultTTL,
		now:     time.Now,
		newID:   uuid.NewString,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create opens a session for freshly issued tokens.
func (s *Store) Create(ctx context.Context, tokens backend.Tokens) (Record, error) {
	claims, err := ParseClaims(tokens.AccessToken)
	if err != nil {
		return Record{}, err
	}
	rec := Record{
		ID:           s.newID(),
		UserID:       claims.UserID,
		Email:        claims.Email,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    s.now().Add(s.ttl).UnixMilli(),
	}
	if !claims.ExpiresAt.IsZero() {
		rec.AccessExpiresAt = claims.ExpiresAt.UnixMilli()
	}
	if err := s.Save(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Get loads a live session. Expired sessions are deleted.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, ErrNotFound
	}
	raw, ok, err := s.backend.Get(ctx, KeyPrefix+id)
	if err != nil {
		return Record{}, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return Record{}, ErrNotFound
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil || rec.AccessToken == "" {
		s.logger.Warn("drop unreadable session", zap.String("session_id", id), zap.Error(err))
		_ = s.backend.Delete(ctx, KeyPrefix+id)
		return Record{}, ErrNotFound
	}
	rec.ID = id
	if s.now().UnixMilli() > rec.ExpiresAt {
		_ = s.backend.Delete(ctx, KeyPrefix+id)
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Save writes rec, keeping its absolute expiry.
func (s *Store) Save(ctx context.Context, rec Record) error {
	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("session id is required")
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ttl := time.UnixMilli(rec.ExpiresAt).Sub(s.now())
	if ttl <= 0 {
		return ErrNotFound
	}
	if err := s.backend.Set(ctx, KeyPrefix+rec.ID, payload, ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete removes a session.
func (s *Store) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	if err := s.backend.Delete(ctx, KeyPrefix+id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
