package ratelimiter

import (
	"sync"
	"time"

	"github.com/SeakMengs/DocSign/internal/config"
	"go.uber.org/zap"
)

type window struct {
	start time.Time
	count int
}

// FixedWindowRateLimiter allows Limit requests per client in every window of TimeFrame.
type FixedWindowRateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*window
	limit     int
	timeFrame time.Duration
	lastPrune time.Time
	now       func() time.Time
	logger    *zap.SugaredLogger
}

func NewFixedWindowLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients:   make(map[string]*window),
		limit:     cfg.RequestsPerTimeFrame,
		timeFrame: cfg.TimeFrame,
		now:       time.Now,
		logger:    logger,
	}
}

// Allow records a request of client and reports whether it is within the limit.
// When it is not, the returned duration is the time left until the window resets.
func (rl *FixedWindowRateLimiter) Allow(client string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.prune(now)

	w, ok := rl.clients[client]
	if !ok || now.Sub(w.start) >= rl.timeFrame {
		w = &window{start: now}
		rl.clients[client] = w
	}

	if w.count >= rl.limit {
		retryAfter := rl.timeFrame - now.Sub(w.start)
		rl.logger.Debugf("Rate limit exceeded for %s, retry after %s", client, retryAfter)
		return false, retryAfter
	}

	w.count++
	return true, 0
}

// drop expired windows at most once per time frame, caller holds mu
func (rl *FixedWindowRateLimiter) prune(now time.Time) {
	if now.Sub(rl.lastPrune) < rl.timeFrame {
		return
	}
	rl.lastPrune = now

	for client, w := range rl.clients {
		if now.Sub(w.start) >= rl.timeFrame {
			delete(rl.clients, client)
		}
	}
}
