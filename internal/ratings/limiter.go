package ratings

import (
	"context"
	"sync"
	"time"
)

// DefaultThrottle matches the rating service's request-rate policy of
// roughly 60 requests per minute.
const DefaultThrottle = 1100 * time.Millisecond

// Limiter enforces a minimum delay between successive rating fetches.
// Only the batch pipeline uses it: a single prediction request touches
// at most 6 teams, where latency matters more than politeness.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewLimiter creates a limiter with the given minimum interval.
// Non-positive intervals fall back to DefaultThrottle.
func NewLimiter(interval time.Duration) *Limiter {
	if interval <= 0 {
		interval = DefaultThrottle
	}
	return &Limiter{interval: interval}
}

// Throttle blocks until at least the configured interval has passed
// since the previous call, or the context is canceled.
func (l *Limiter) Throttle(ctx context.Context) error {
	l.mu.Lock()
	wait := l.interval - time.Since(l.last)
	if wait <= 0 {
		l.last = time.Now()
		l.mu.Unlock()
		return nil
	}
	prev := l.last
	reserved := time.Now().Add(wait)
	l.last = reserved
	l.mu.Unlock()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		// Release the reserved slot so the next caller does not pay
		// for a fetch that never happened. A later caller may already
		// hold a newer reservation; leave that one alone.
		l.mu.Lock()
		if l.last.Equal(reserved) {
			l.last = prev
		}
		l.mu.Unlock()
		return ctx.Err()
	}
}
