package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"
)

const (
	// DefaultWindow is the window length used when none is configured.
	DefaultWindow = time.Minute
	// DefaultMax is the number of requests allowed per window by default.
	DefaultMax = 10
)

// Limiter applies a fixed-window policy on top of a Store.
type Limiter struct {
	store  Store
	now    func() time.Time
	window time.Duration
	max    int
	// mu serializes the read-increment-write step for stores without Incrementer.
	mu sync.Mutex
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithWindow sets the window length. Non-positive values are ignored.
func WithWindow(d time.Duration) Option {
	return func(l *Limiter) {
		if d > 0 {
			l.window = d
		}
	}
}

// WithMax sets the number of requests allowed per window. Non-positive values are ignored.
func WithMax(n int) Option {
	return func(l *Limiter) {
		if n > 0 {
			l.max = n
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// New creates a Limiter backed by store.
func New(store Store, opts ...Option) *Limiter {
	l := &Limiter{
		store:  store,
		now:    time.Now,
		window: DefaultWindow,
		max:    DefaultMax,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Window returns the configured window length.
func (l *Limiter) Window() time.Duration { return l.window }

// Max returns the configured number of requests per window.
func (l *Limiter) Max() int { return l.max }

// Allow records one request for key and reports whether it fits the window.
// On store failure the returned Decision is zero and the error wraps ErrStoreFailed.
func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	now := l.now()

	if err := l.store.Sweep(ctx, now); err != nil {
		return Decision{}, errors.Join(ErrStoreFailed, err)
	}

	entry, err := l.step(ctx, key, now)
	if err != nil {
		return Decision{}, errors.Join(ErrStoreFailed, err)
	}

	return Decision{
		Allowed:   entry.Count <= l.max,
		Limit:     l.max,
		Remaining: max(l.max-entry.Count, 0),
		ResetAt:   entry.WindowResetAt,
	}, nil
}

func (l *Limiter) step(ctx context.Context, key string, now time.Time) (Entry, error) {
	if inc, ok := l.store.(Incrementer); ok {
		return inc.Increment(ctx, key, now, l.window)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, found, err := l.store.Get(ctx, key)
	if err != nil {
		return Entry{}, err
	}

	if !found || entry.Expired(now) {
		entry = Entry{Count: 1, WindowResetAt: now.Add(l.window)}
	} else {
		entry.Count++
	}

	if err := l.store.Set(ctx, key, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}
