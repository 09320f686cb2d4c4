// Package pendingstore keeps single-slot records that must survive between
// browser requests: the verified-but-not-yet-accepted invitation and the
// in-progress signup.
//
// Each slot holds at most one record per browser scope. Writes overwrite,
// reads enforce the slot TTL and evict stale values lazily, and no operation
// surfaces a storage error to the caller.
package pendingstore

import (
	"context"
	"time"
)

// Backend is the raw key-value storage behind a slot.
//
// Set receives the slot TTL as ttlHint (zero means no expiry). Backends may use
// it to reclaim space; slots never rely on it for correctness.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttlHint time.Duration) error
	Delete(ctx context.Context, key string) error
}
