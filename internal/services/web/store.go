package web

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ourhour/ourhour-web/internal/platform/timeouts"
	"github.com/ourhour/ourhour-web/internal/services/web/pendingstore"
	"github.com/ourhour/ourhour-web/internal/services/web/pendingstore/redisstore"
	"github.com/ourhour/ourhour-web/internal/services/web/pendingstore/sqlite"
)

// Pending store drivers.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

const purgeInterval = 10 * time.Minute

// StoreConfig selects and configures the pending-record backend.
type StoreConfig struct {
	Driver     string
	SQLitePath string
	Redis      redisstore.Options
}

// OpenStore opens the configured backend. Connectivity checks are bounded
// by timeouts.StorePing.
func OpenStore(ctx context.Context, cfg StoreConfig) (pendingstore.Backend, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	pingCtx, cancel := context.WithTimeout(ctx, timeouts.StorePing)
	defer cancel()

	switch driver {
	case "", StoreMemory:
		return pendingstore.NewMemory(), nil
	case StoreSQLite:
		store, err := sqlite.Open(pingCtx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite pending store: %w", err)
		}
		return store, nil
	case StoreRedis:
		store, err := redisstore.Dial(pingCtx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("open redis pending store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown pending store driver %q", cfg.Driver)
	}
}

type purger interface {
	Purge(ctx context.Context) (int64, error)
}

// startPurgeWorker periodically deletes expired rows from backends that
// cannot expire keys themselves. The returned channel closes when the
// worker exits.
func startPurgeWorker(ctx context.Context, store pendingstore.Backend, logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	p, ok := store.(purger)
	if !ok {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		ticker := time.NewTicker(purgeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := p.Purge(ctx)
				if err != nil {
					logger.Warn("purge pending store", zap.Error(err))
					continue
				}
				if removed > 0 {
					logger.Debug("purged pending records", zap.Int64("removed", removed))
				}
			}
		}
	}()
	return done
}
