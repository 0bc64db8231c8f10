package store

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// memoryRateLimiter keeps fixed-window counters in process memory. It is
// used when no Redis address is configured.
type memoryRateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	now     func() time.Time

	// nextSweep is when expired windows are dropped next, at most once per
	// period.
	nextSweep time.Time
}

// NewMemoryRateLimiter allows limit requests per key and period.
func NewMemoryRateLimiter(limit int, period time.Duration) RateLimiter {
	return &memoryRateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
}

func (l *memoryRateLimiter) Allow(_ context.Context, key string) (int, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		l.sweep(now)
		w = &window{resetAt: now.Add(l.period)}
		l.windows[key] = w
	}
	w.count++

	reset := w.resetAt.Sub(now)
	remaining := l.limit - w.count
	if remaining < 0 {
		return 0, reset, ErrRateLimited
	}

	return remaining, reset, nil
}

// sweep drops expired windows once the sweep is due. Callers hold mu.
func (l *memoryRateLimiter) sweep(now time.Time) {
	if l.nextSweep.IsZero() {
		l.nextSweep = now.Add(l.period)
		return
	}
	if now.Before(l.nextSweep) {
		return
	}
	l.nextSweep = now.Add(l.period)

	for key, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, key)
		}
	}
}
