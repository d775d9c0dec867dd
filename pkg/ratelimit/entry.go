package ratelimit

import (
	"context"
	"math"
	"time"
)

// Entry is the per-identity counter state.
type Entry struct {
	WindowResetAt time.Time `json:"window_reset_at"`
	Count         int       `json:"count"`
}

// Expired reports whether the entry's window has elapsed at now.
func (e Entry) Expired(now time.Time) bool {
	return now.After(e.WindowResetAt)
}

// Store persists entries between requests.
// Get reports found=false for unknown keys rather than an error.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, e Entry) error
	// Sweep removes every entry whose window has elapsed at now.
	Sweep(ctx context.Context, now time.Time) error
}

// Incrementer is implemented by stores that perform the whole window step
// (replace when expired, otherwise increment) as one atomic operation.
type Incrementer interface {
	Increment(ctx context.Context, key string, now time.Time, window time.Duration) (Entry, error)
}

// Decision is the result of one [Limiter.Allow] call.
type Decision struct {
	ResetAt   time.Time
	Limit     int
	Remaining int
	Allowed   bool
}

// RetryAfter returns how long the caller should wait before the window resets.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	return max(d.ResetAt.Sub(now), 0)
}

// RetryAfterSeconds is RetryAfter rounded up to whole seconds, minimum 1,
// as expected by the Retry-After header.
func (d Decision) RetryAfterSeconds(now time.Time) int {
	secs := int(math.Ceil(d.RetryAfter(now).Seconds()))
	return max(secs, 1)
}
