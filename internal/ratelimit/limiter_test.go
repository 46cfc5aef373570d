package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"quizforge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireWithinBudgetDoesNotBlock(t *testing.T) {
	l := New("groq", domain.RateLimit{MaxRequests: 3, Window: time.Second})

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, l.Acquire(context.Background()))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestAcquireBeyondBudgetWaitsForOldestToLeaveWindow(t *testing.T) {
	// 2 requests per 400ms: the 3rd call must not start until ~400ms
	// after the 1st, not when a fraction of the window has elapsed.
	l := New("groq", domain.RateLimit{MaxRequests: 2, Window: 400 * time.Millisecond})

	windowStart := time.Now()
	require.NoError(t, l.Acquire(context.Background()))
	require.NoError(t, l.Acquire(context.Background()))

	require.NoError(t, l.Acquire(context.Background()))
	assert.GreaterOrEqual(t, time.Since(windowStart), 380*time.Millisecond)
}

func TestAcquireEnforcesRollingWindowNotRefillRate(t *testing.T) {
	// Issue calls as fast as the limiter admits them and verify every
	// call starts at least one window after the call max positions
	// earlier. A refill-rate limiter admits roughly twice the budget
	// inside a rolling window once the initial burst is spent.
	const max = 3
	window := 300 * time.Millisecond
	l := New("groq", domain.RateLimit{MaxRequests: max, Window: window})

	var starts []time.Time
	for i := 0; i < 2*max+1; i++ {
		require.NoError(t, l.Acquire(context.Background()))
		starts = append(starts, time.Now())
	}

	for i := max; i < len(starts); i++ {
		gap := starts[i].Sub(starts[i-max])
		assert.GreaterOrEqual(t, gap, window-20*time.Millisecond,
			"call %d started %v after call %d; window is %v", i, gap, i-max, window)
	}
}

func TestAcquireServesWaitersInOrder(t *testing.T) {
	l := New("groq", domain.RateLimit{MaxRequests: 1, Window: 120 * time.Millisecond})
	require.NoError(t, l.Acquire(context.Background()))

	const waiters = 4
	var (
		mu    sync.Mutex
		order []int
		wg    sync.WaitGroup
	)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			assert.NoError(t, l.Acquire(context.Background()))
			mu.Lock()
			order = append(order, id)
			mu.Unlock()
		}(i)
		// Stagger so each waiter enters Acquire before the next.
		time.Sleep(25 * time.Millisecond)
	}
	wg.Wait()

	assert.Equal(t, []int{0, 1, 2, 3}, order)
}

func TestAcquireRespectsCancellation(t *testing.T) {
	l := New("groq", domain.RateLimit{MaxRequests: 1, Window: time.Hour})
	require.NoError(t, l.Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := l.Acquire(ctx)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestNonPositiveBudgetCollapsesToOne(t *testing.T) {
	l := New("broken", domain.RateLimit{MaxRequests: 0, Window: time.Hour})
	require.NoError(t, l.Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Acquire(ctx))
}
