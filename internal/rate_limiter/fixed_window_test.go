package ratelimiter

import (
	"sync"
	"testing"
	"time"

	"github.com/SeakMengs/DocSign/internal/config"
	"github.com/stretchr/testify/assert"
)

func newTestLimiter(limit int, now *time.Time) *FixedWindowRateLimiter {
	rl := NewRateLimiter(config.RateLimiterConfig{
		RequestsPerTimeFrame: limit,
		TimeFrame:            time.Minute,
		Enabled:              true,
	}, nil)
	rl.now = func() time.Time { return *now }
	return rl
}

func TestFixedWindowLimit(t *testing.T) {
	now := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	rl := newTestLimiter(2, &now)

	allowed, _ := rl.Allow("10.0.0.1")
	assert.True(t, allowed)
	allowed, _ = rl.Allow("10.0.0.1")
	assert.True(t, allowed)

	now = now.Add(20 * time.Second)
	allowed, retryAfter := rl.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, 40*time.Second, retryAfter)

	// clients are counted separately
	allowed, _ = rl.Allow("10.0.0.2")
	assert.True(t, allowed)

	now = now.Add(40 * time.Second)
	allowed, _ = rl.Allow("10.0.0.1")
	assert.True(t, allowed, "a new window starts after the time frame")
}

func TestFixedWindowPrune(t *testing.T) {
	now := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	rl := newTestLimiter(1, &now)

	rl.Allow("a")
	rl.Allow("b")
	assert.Len(t, rl.clients, 2)

	now = now.Add(2 * time.Minute)
	rl.Allow("c")
	assert.Len(t, rl.clients, 1)
}

func TestFixedWindowConcurrent(t *testing.T) {
	now := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	rl := newTestLimiter(50, &now)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := rl.Allow("same"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowedCount)
}
