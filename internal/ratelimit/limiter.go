// Package ratelimit enforces each provider's request budget: at most
// max_requests calls may start within any rolling window. The budget is a
// sliding log of call start times, so the (max+1)th call is admitted only
// once the oldest of the last max starts has left the window — not when a
// refill interval elapses.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"quizforge/internal/domain"
)

// Limiter is a per-provider sliding-window request budget. One instance
// exists per provider descriptor for the process lifetime and is shared by
// every concurrent caller targeting that provider.
type Limiter struct {
	name   string
	max    int
	window time.Duration

	mu sync.Mutex
	// starts holds the admission times of the last max calls, oldest
	// first. Future times are admissions already promised to waiters.
	starts []time.Time
}

// New creates a limiter allowing maxRequests call starts per window. A
// non-positive budget collapses to one request per window so a
// misconfigured provider throttles hard instead of running unbounded.
func New(name string, rl domain.RateLimit) *Limiter {
	maxRequests := rl.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1
	}
	window := rl.Window
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{
		name:   name,
		max:    maxRequests,
		window: window,
	}
}

// Acquire suspends the calling goroutine until a slot is available or ctx
// is cancelled. Each caller is assigned its admission time on entry, so
// waiters are served strictly first-acquire-first-served; Acquire never
// fails for capacity reasons, only for cancellation.
//
// A cancelled waiter's reserved slot still counts against the budget: later
// waiters were already scheduled behind it, and releasing it early could
// only reorder them.
func (l *Limiter) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	now := time.Now()
	var slot time.Time
	if len(l.starts) < l.max {
		slot = now
	} else {
		slot = l.starts[0].Add(l.window)
		if slot.Before(now) {
			slot = now
		}
		l.starts = l.starts[1:]
	}
	l.starts = append(l.starts, slot)
	l.mu.Unlock()

	wait := time.Until(slot)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Name returns the provider this limiter budgets.
func (l *Limiter) Name() string {
	return l.name
}
