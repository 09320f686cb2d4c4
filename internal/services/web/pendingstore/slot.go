package pendingstore

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Option configures a slot.
type Option func(*slotConfig)

type slotConfig struct {
	now    func() time.Time
	logger *zap.Logger
	ttl    *time.Duration
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(cfg *slotConfig) {
		if now != nil {
			cfg.now = now
		}
	}
}

// WithLogger sets the logger that receives swallowed backend failures.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *slotConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithTTL overrides the slot TTL. It has no effect on slots without one.
func WithTTL(ttl time.Duration) Option {
	return func(cfg *slotConfig) {
		if ttl > 0 {
			cfg.ttl = &ttl
		}
	}
}

// Slot is a single-record cell per scope.
type Slot[T any] struct {
	key     string
	ttl     time.Duration
	backend Backend
	now     func() time.Time
	logger  *zap.Logger

	decode  func([]byte) (T, error)
	stamp   func(T, time.Time) T
	savedAt func(T) time.Time
}

// NewInvitationSlot returns the pending invitation slot (TTL 15 minutes).
func NewInvitationSlot(backend Backend, opts ...Option) *Slot[PendingInvitation] {
	return newSlot(backend, InvitationKey, InvitationTTL, slotCodec[PendingInvitation]{
		decode: decodeInvitation,
		stamp: func(rec PendingInvitation, at time.Time) PendingInvitation {
			rec.SavedAt = at.UnixMilli()
			return rec
		},
		savedAt: PendingInvitation.SavedTime,
	}, opts...)
}

// NewSignupSlot returns the pending signup slot (no TTL).
func NewSignupSlot(backend Backend, opts ...Option) *Slot[PendingSignup] {
	return newSlot(backend, SignupKey, 0, slotCodec[PendingSignup]{decode: decodeSignup}, opts...)
}

type slotCodec[T any] struct {
	decode  func([]byte) (T, error)
	stamp   func(T, time.Time) T
	savedAt func(T) time.Time
}

func newSlot[T any](backend Backend, key string, ttl time.Duration, codec slotCodec[T], opts ...Option) *Slot[T] {
	cfg := slotConfig{now: time.Now, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.ttl != nil && ttl > 0 {
		ttl = *cfg.ttl
	}
	if backend == nil {
		backend = NewMemory()
	}
	return &Slot[T]{
		key:     key,
		ttl:     ttl,
		backend: backend,
		now:     cfg.now,
		logger:  cfg.logger.With(zap.String("slot", key)),
		decode:  codec.decode,
		stamp:   codec.stamp,
		savedAt: codec.savedAt,
	}
}

// Key returns the slot key.
func (s *Slot[T]) Key() string { return s.key }

// TTL returns the slot TTL, zero when records never expire.
func (s *Slot[T]) TTL() time.Duration { return s.ttl }

// Save overwrites the scope's record. TTL slots stamp the record with the
// current time first. Failures are logged and dropped.
func (s *Slot[T]) Save(ctx context.Context, scope string, record T) {
	if s.stamp != nil {
		record = s.stamp(record, s.now())
	}
	raw, err := json.Marshal(record)
	if err != nil {
		s.logger.Warn("encode pending record", zap.Error(err))
		return
	}
	if err := s.backend.Set(ctx, s.storageKey(scope), raw, s.ttl); err != nil {
		s.logger.Warn("save pending record", zap.Error(err))
	}
}

// Read returns the scope's record when one is stored, decodes, carries every
// required field and is no older than the TTL. Expired records are deleted.
func (s *Slot[T]) Read(ctx context.Context, scope string) (T, bool) {
	var zero T
	key := s.storageKey(scope)
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.logger.Warn("read pending record", zap.Error(err))
		return zero, false
	}
	if !ok || len(raw) == 0 {
		return zero, false
	}
	record, err := s.decode(raw)
	if err != nil {
		s.logger.Debug("discard unreadable pending record", zap.Error(err))
		return zero, false
	}
	if s.expired(record) {
		if err := s.backend.Delete(ctx, key); err != nil {
			s.logger.Warn("evict expired pending record", zap.Error(err))
		}
		return zero, false
	}
	return record, true
}

// Clear removes the scope's record. It is idempotent.
func (s *Slot[T]) Clear(ctx context.Context, scope string) {
	if err := s.backend.Delete(ctx, s.storageKey(scope)); err != nil {
		s.logger.Warn("clear pending record", zap.Error(err))
	}
}

// For binds the slot to one scope.
func (s *Slot[T]) For(scope string) Scoped[T] {
	return Scoped[T]{slot: s, scope: scope}
}

func (s *Slot[T]) expired(record T) bool {
	if s.ttl <= 0 || s.savedAt == nil {
		return false
	}
	return s.now().Sub(s.savedAt(record)) > s.ttl
}

func (s *Slot[T]) storageKey(scope string) string {
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return s.key
	}
	return s.key + ":" + scope
}

// Scoped is a slot bound to a single scope.
type Scoped[T any] struct {
	slot  *Slot[T]
	scope string
}

// Save overwrites the record.
func (s Scoped[T]) Save(ctx context.Context, record T) { s.slot.Save(ctx, s.scope, record) }

// Read returns the live record, if any.
func (s Scoped[T]) Read(ctx context.Context) (T, bool) { return s.slot.Read(ctx, s.scope) }

// Clear removes the record.
func (s Scoped[T]) Clear(ctx context.Context) { s.slot.Clear(ctx, s.scope) }
