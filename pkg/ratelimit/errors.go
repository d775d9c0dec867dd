package ratelimit

import "errors"

var (
	// ErrStoreFailed wraps any error returned by the underlying store.
	ErrStoreFailed = errors.New("ratelimit: store operation failed")

	// ErrInvalidEntry is returned when a stored entry cannot be decoded.
	ErrInvalidEntry = errors.New("ratelimit: invalid stored entry")
)
