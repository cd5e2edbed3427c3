package quota

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivals-dev/rivals/shared/clock"
	"github.com/rivals-dev/rivals/shared/config"
)

var testLimits = config.Quota{AnonymousPerDay: 3, UserPerDay: 7, CleanupInterval: time.Hour}

func newTestLimiter() (*Limiter, *clock.Manual) {
	clk := clock.NewManual(time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC))
	return New(testLimits, clk), clk
}

func TestTryConsumeAnonymous(t *testing.T) {
	l, _ := newTestLimiter()
	anon := Anonymous("1.2.3.4")

	for i := 0; i < 3; i++ {
		assert.True(t, l.TryConsume(anon, 1), "write %d", i+1)
	}
	assert.False(t, l.TryConsume(anon, 1))

	a := l.GetAllowance(anon)
	assert.Equal(t, KindAnonymous, a.SubjectKind)
	assert.Equal(t, 0, a.Remaining)
	assert.Equal(t, 3, a.Limit)
}

func TestTryConsumeUser(t *testing.T) {
	l, _ := newTestLimiter()
	u := User("u1")

	assert.False(t, l.TryConsume(u, 8), "more than the whole allowance")
	assert.True(t, l.TryConsume(u, 5))
	assert.False(t, l.TryConsume(u, 3), "partial fit is denied")
	assert.True(t, l.TryConsume(u, 2))
	assert.Equal(t, 0, l.GetAllowance(u).Remaining)

	// the same address as anonymous is a separate bucket
	assert.True(t, l.TryConsume(Anonymous("u1"), 1))
}

func TestTryConsumeNonPositive(t *testing.T) {
	l, _ := newTestLimiter()
	anon := Anonymous("1.2.3.4")

	assert.True(t, l.TryConsume(anon, 0))
	assert.True(t, l.TryConsume(anon, -2))
	assert.Equal(t, 3, l.GetAllowance(anon).Remaining)
}

func TestDayBoundary(t *testing.T) {
	l, clk := newTestLimiter()
	anon := Anonymous("1.2.3.4")

	for l.TryConsume(anon, 1) {
	}
	a := l.GetAllowance(anon)
	assert.Equal(t, 0, a.Remaining)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC).UnixMilli(), a.ResetAt)

	clk.Advance(2 * time.Minute)

	a = l.GetAllowance(anon)
	assert.Equal(t, 3, a.Remaining)
	assert.Equal(t, time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC).UnixMilli(), a.ResetAt)
	assert.True(t, l.TryConsume(anon, 1))
}

func TestLimitChangeResets(t *testing.T) {
	l, clk := newTestLimiter()
	anon := Anonymous("1.2.3.4")
	require.True(t, l.TryConsume(anon, 3))

	raised := New(config.Quota{AnonymousPerDay: 5, UserPerDay: 7}, clk)
	raised.buckets = l.buckets

	a := raised.GetAllowance(anon)
	assert.Equal(t, 5, a.Limit)
	assert.Equal(t, 5, a.Remaining)
}

func TestGetAllowanceDoesNotConsume(t *testing.T) {
	l, _ := newTestLimiter()
	u := User("u1")

	for i := 0; i < 10; i++ {
		a := l.GetAllowance(u)
		assert.Equal(t, 7, a.Remaining)
		assert.Equal(t, KindUser, a.SubjectKind)
	}
}

func TestConcurrentConsume(t *testing.T) {
	l, _ := newTestLimiter()
	u := User("u1")

	var admitted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.TryConsume(u, 1) {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(7), admitted.Load())
}

func TestCleanup(t *testing.T) {
	l, clk := newTestLimiter()
	for i := 0; i < 5; i++ {
		l.TryConsume(Anonymous(fmt.Sprintf("10.0.0.%d", i)), 1)
	}
	assert.Equal(t, 5, l.Len())
	assert.Equal(t, 0, l.Cleanup(), "today's buckets stay")

	clk.Advance(time.Hour)
	l.TryConsume(Anonymous("10.0.0.0"), 1)
	assert.Equal(t, 4, l.Cleanup())
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 2, l.GetAllowance(Anonymous("10.0.0.0")).Remaining, "refreshed bucket keeps today's usage")
}

func TestCleanupConcurrentWithConsume(t *testing.T) {
	l, clk := newTestLimiter()
	u := User("u1")

	clk.Advance(time.Hour)
	var admitted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if l.TryConsume(u, 1) {
				admitted.Add(1)
			}
		}()
		go func() {
			defer wg.Done()
			l.Cleanup()
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(7), admitted.Load(), "eviction never loses or duplicates usage within a day")
}

func TestStartBackgroundCleanup(t *testing.T) {
	l, clk := newTestLimiter()
	l.TryConsume(Anonymous("1.2.3.4"), 1)
	clk.Advance(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.StartBackgroundCleanup(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return l.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup did not stop")
	}
}
