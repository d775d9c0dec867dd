// Package ratelimit implements a fixed-window request limiter keyed by an
// arbitrary identity string.
//
// A [Limiter] owns the policy (window length and maximum requests) and an
// injected [Store] owns the state. Two stores are provided:
//
//   - [MemoryStore]: a map guarded by a mutex, for single-instance deployments.
//   - [RedisStore]: Redis keys with expiry, for deployments with several instances.
//
// Window semantics: the first request from an identity opens a window of the
// configured length with a count of one. Requests inside the window increment
// the count and are rejected once it exceeds the maximum. The first request
// after the window has elapsed replaces the entry and starts a new window.
//
//	store := ratelimit.NewMemoryStore()
//	limiter := ratelimit.New(store,
//	    ratelimit.WithWindow(time.Minute),
//	    ratelimit.WithMax(10),
//	)
//
//	d, err := limiter.Allow(ctx, clientIP)
//	if err == nil && !d.Allowed {
//	    w.Header().Set("Retry-After", strconv.Itoa(d.RetryAfterSeconds(time.Now())))
//	}
//
// Expired entries are swept on every [Limiter.Allow] call; there is no
// background goroutine.
//
// Stores that can apply the window step atomically on their side implement
// [Incrementer]; the limiter uses it when present. For other stores the
// limiter serializes the read-increment-write sequence with its own mutex,
// which is correct as long as the store is not shared between processes.
package ratelimit
