// Package ratelimiter throttles short bursts per key with token buckets from
// golang.org/x/time/rate. It sits in front of every route; the daily post
// allowance is a separate concern handled by the quota package.
package ratelimiter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/rivals-dev/rivals/shared/logger"
)

type entry struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

func (e *entry) touch(now time.Time) {
	e.mu.Lock()
	e.lastSeen = now
	e.mu.Unlock()
}

func (e *entry) seen() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastSeen
}

// KeyedRateLimiter manages one token bucket per key.
type KeyedRateLimiter struct {
	limiters map[string]*entry
	mu       sync.RWMutex
	rps      rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
}

// New creates a limiter refilling rps tokens per second up to burst. Keys idle
// for longer than idleTTL are dropped by Cleanup.
func New(rps float64, burst int, idleTTL time.Duration) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		limiters: make(map[string]*entry),
		rps:      rate.Limit(rps),
		burst:    burst,
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// getLimiter gets or creates a bucket for a key
func (krl *KeyedRateLimiter) getLimiter(key string) *entry {
	now := krl.now()

	// First try read-only lookup
	krl.mu.RLock()
	e, exists := krl.limiters[key]
	krl.mu.RUnlock()

	if exists {
		e.touch(now)
		return e
	}

	// If not found, acquire write lock and create new
	krl.mu.Lock()
	defer krl.mu.Unlock()

	// Double-check after acquiring write lock
	if e, exists = krl.limiters[key]; exists {
		e.touch(now)
		return e
	}

	e = &entry{limiter: rate.NewLimiter(krl.rps, krl.burst), lastSeen: now}
	krl.limiters[key] = e
	return e
}

// Allow checks if a request should be allowed for a given key
func (krl *KeyedRateLimiter) Allow(key string) bool {
	e := krl.getLimiter(key)
	return e.limiter.AllowN(krl.now(), 1)
}

// RetryAfter estimates how long the key has to wait for its next token.
func (krl *KeyedRateLimiter) RetryAfter(key string) time.Duration {
	if krl.rps <= 0 {
		return 0
	}
	e := krl.getLimiter(key)
	missing := 1 - e.limiter.TokensAt(krl.now())
	if missing <= 0 {
		return 0
	}
	return time.Duration(missing / float64(krl.rps) * float64(time.Second))
}

func (krl *KeyedRateLimiter) Len() int {
	krl.mu.RLock()
	defer krl.mu.RUnlock()
	return len(krl.limiters)
}

// Cleanup removes keys idle for longer than idleTTL. A dropped key starts
// again with a full bucket.
func (krl *KeyedRateLimiter) Cleanup() int {
	cutoff := krl.now().Add(-krl.idleTTL)

	krl.mu.Lock()
	defer krl.mu.Unlock()

	removed := 0
	for key, e := range krl.limiters {
		if e.seen().Before(cutoff) {
			delete(krl.limiters, key)
			removed++
		}
	}
	return removed
}

// StartBackgroundCleanup runs Cleanup every interval until ctx is done.
func (krl *KeyedRateLimiter) StartBackgroundCleanup(ctx context.Context, interval time.Duration) {
	log := logger.Component("ratelimiter")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := krl.Cleanup(); removed > 0 {
				log.Debug("dropped idle rate limiters", "count", removed)
			}
		}
	}
}
