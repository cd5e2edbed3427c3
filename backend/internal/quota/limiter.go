// Package quota enforces the fixed daily post allowance per subject.
package quota

import (
	"context"
	"sync"
	"time"

	"github.com/rivals-dev/rivals/shared/clock"
	"github.com/rivals-dev/rivals/shared/config"
	"github.com/rivals-dev/rivals/shared/logger"
)

type Allowance struct {
	SubjectKind Kind  `json:"subjectKind"`
	Remaining   int   `json:"remaining"`
	Limit       int   `json:"limit"`
	ResetAt     int64 `json:"resetAt"`
}

type bucket struct {
	mu      sync.Mutex
	day     time.Time
	used    int
	limit   int
	evicted bool
}

// refresh starts a new day when the bucket is fresh, belongs to an earlier
// (or later) day, or was created under another limit.
func (b *bucket) refresh(today time.Time, limit int) {
	if !b.day.Equal(today) || b.limit != limit {
		b.day = today
		b.used = 0
		b.limit = limit
	}
}

// Limiter keeps one bucket per subject key. Each bucket has its own mutex so
// distinct subjects never contend beyond the map lookup.
type Limiter struct {
	clock  clock.Clock
	limits config.Quota

	mu      sync.RWMutex
	buckets map[string]*bucket
}

func New(limits config.Quota, clk clock.Clock) *Limiter {
	return &Limiter{
		clock:   clk,
		limits:  limits,
		buckets: make(map[string]*bucket),
	}
}

func (l *Limiter) limitFor(s Subject) int {
	if s.IsUser() {
		return l.limits.UserPerDay
	}
	return l.limits.AnonymousPerDay
}

func (l *Limiter) getBucket(key string) *bucket {
	l.mu.RLock()
	b, exists := l.buckets[key]
	l.mu.RUnlock()
	if exists {
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if b, exists = l.buckets[key]; exists {
		return b
	}
	b = &bucket{}
	l.buckets[key] = b
	return b
}

// withBucket runs fn with the subject's bucket locked. A bucket the janitor
// evicted meanwhile is discarded and looked up again.
func (l *Limiter) withBucket(key string, fn func(b *bucket)) {
	for {
		b := l.getBucket(key)
		b.mu.Lock()
		if b.evicted {
			b.mu.Unlock()
			continue
		}
		fn(b)
		b.mu.Unlock()
		return
	}
}

// TryConsume takes tokens from the subject's allowance for the current UTC
// day. It succeeds only when the whole amount fits; a denied call changes
// nothing. Non-positive amounts are admitted without consuming.
func (l *Limiter) TryConsume(s Subject, tokens int) bool {
	if tokens <= 0 {
		return true
	}
	today := clock.Today(l.clock)
	limit := l.limitFor(s)

	allowed := false
	l.withBucket(s.Key(), func(b *bucket) {
		b.refresh(today, limit)
		if b.used+tokens <= b.limit {
			b.used += tokens
			allowed = true
		}
	})
	return allowed
}

// GetAllowance reports what the subject has left today without consuming.
func (l *Limiter) GetAllowance(s Subject) Allowance {
	today := clock.Today(l.clock)
	limit := l.limitFor(s)

	var a Allowance
	l.withBucket(s.Key(), func(b *bucket) {
		b.refresh(today, limit)
		a = Allowance{
			SubjectKind: s.Kind,
			Remaining:   max(0, b.limit-b.used),
			Limit:       b.limit,
			ResetAt:     b.day.AddDate(0, 0, 1).UnixMilli(),
		}
	})
	return a
}

// Len returns the number of tracked subjects.
func (l *Limiter) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.buckets)
}

// Cleanup drops buckets whose day is over. They would reset on next use
// anyway, so only memory is reclaimed.
func (l *Limiter) Cleanup() int {
	today := clock.Today(l.clock)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, b := range l.buckets {
		b.mu.Lock()
		if b.day.Before(today) {
			b.evicted = true
			delete(l.buckets, key)
			removed++
		}
		b.mu.Unlock()
	}
	return removed
}

// StartBackgroundCleanup runs Cleanup every interval until ctx is done.
func (l *Limiter) StartBackgroundCleanup(ctx context.Context, interval time.Duration) {
	log := logger.Component("quota")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("starting quota bucket cleanup", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			log.Info("stopping quota bucket cleanup")
			return
		case <-ticker.C:
			if removed := l.Cleanup(); removed > 0 {
				log.Debug("evicted stale quota buckets", "count", removed, "remaining", l.Len())
			}
		}
	}
}
