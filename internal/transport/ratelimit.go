package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const quotaWindow = 24 * time.Hour

// ErrDailyLimitReached is returned when the daily request quota is used up.
var ErrDailyLimitReached = errors.New("daily request limit reached")

// RateLimiter throttles catalog requests with a token bucket and, when a
// daily maximum is set, a 24-hour request quota. A quota slot is reserved
// before waiting on the bucket, so concurrent callers cannot overshoot it,
// and handed back when the wait is abandoned.
type RateLimiter struct {
	bucket *rate.Limiter
	now    func() time.Time

	mu          sync.Mutex
	maxDaily    int64
	used        int64
	windowStart time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the clock, for tests.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.now = f
	}
}

// NewRateLimiter creates a limiter allowing perSecond requests with the
// given burst. maxDaily <= 0 disables the daily quota.
func NewRateLimiter(
	perSecond float64,
	burst int,
	maxDaily int64,
	opts ...RateLimiterOption,
) *RateLimiter {
	r := &RateLimiter{
		bucket:   rate.NewLimiter(rate.Limit(perSecond), burst),
		maxDaily: maxDaily,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.windowStart = r.now()
	return r
}

// Wait blocks until a request may be issued or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	window, err := r.reserve()
	if err != nil {
		return err
	}
	if err := r.bucket.Wait(ctx); err != nil {
		r.release(window)
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return nil
}

// DailyCount returns the number of requests in the current window.
func (r *RateLimiter) DailyCount() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rollLocked()
	return r.used
}

// Remaining returns the requests left in the current window, or -1 when no
// daily quota is configured.
func (r *RateLimiter) Remaining() int64 {
	if r.maxDaily <= 0 {
		return -1
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rollLocked()
	return max(r.maxDaily-r.used, 0)
}

// reserve takes a quota slot and returns the start of the window it was
// taken from.
func (r *RateLimiter) reserve() (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rollLocked()
	if r.maxDaily > 0 && r.used >= r.maxDaily {
		return time.Time{}, fmt.Errorf("%w (%d/%d)", ErrDailyLimitReached, r.used, r.maxDaily)
	}
	r.used++
	return r.windowStart, nil
}

// release hands back a slot taken in window. A slot from an elapsed window
// is not refunded against the current one.
func (r *RateLimiter) release(window time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rollLocked()
	if r.windowStart.Equal(window) && r.used > 0 {
		r.used--
	}
}

// rollLocked starts a new quota window once the current one has elapsed.
func (r *RateLimiter) rollLocked() {
	if now := r.now(); now.Sub(r.windowStart) >= quotaWindow {
		r.used = 0
		r.windowStart = now
	}
}
