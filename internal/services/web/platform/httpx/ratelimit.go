package httpx

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/ourhour/ourhour-web/internal/services/web/platform/requestmeta"
)

// RateLimitConfig sizes the per-client token bucket.
type RateLimitConfig struct {
	PerMinute int
	Burst     int
	// IdleTTL drops buckets for clients quiet this long.
	IdleTTL time.Duration
	Policy  requestmeta.SchemePolicy
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter keeps one token bucket per client address.
type ClientLimiter struct {
	cfg   RateLimitConfig
	limit rate.Limit
	now   func() time.Time

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

// NewClientLimiter builds a limiter. Non-positive PerMinute disables limiting.
func NewClientLimiter(cfg RateLimitConfig) *ClientLimiter {
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.PerMinute
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 10 * time.Minute
	}
	return &ClientLimiter{
		cfg:      cfg,
		limit:    rate.Limit(float64(cfg.PerMinute) / 60),
		now:      time.Now,
		visitors: make(map[string]*visitor),
	}
}

// Allow reports whether client may proceed now.
func (l *ClientLimiter) Allow(client string) bool {
	if l == nil || l.cfg.PerMinute <= 0 {
		return true
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()
	if now.Sub(l.lastSweep) > l.cfg.IdleTTL {
		for key, v := range l.visitors {
			if now.Sub(v.lastSeen) > l.cfg.IdleTTL {
				delete(l.visitors, key)
			}
		}
		l.lastSweep = now
	}
	v, ok := l.visitors[client]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.cfg.Burst)}
		l.visitors[client] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// RateLimit answers 429 once a client exhausts its bucket.
func RateLimit(limiter *ClientLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(requestmeta.ClientIP(r, limiter.cfg.Policy)) {
				retry := 60 / max(limiter.cfg.PerMinute, 1)
				w.Header().Set("Retry-After", strconv.Itoa(max(retry, 1)))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
