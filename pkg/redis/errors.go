package redis

import "errors"

// Open and Healthcheck return these sentinels, joined with the go-redis
// error when there is one. Match them with errors.Is.
var (
	// ErrMissingURL is returned by Open when no URL is configured.
	ErrMissingURL = errors.New("rate limit store: redis url is not set")
	// ErrInvalidURL covers unsupported schemes and URLs go-redis cannot parse.
	ErrInvalidURL = errors.New("rate limit store: redis url must be redis:// or rediss://")
	// ErrUnreachable means no PING succeeded within the retry budget.
	ErrUnreachable = errors.New("rate limit store: redis did not answer")
	ErrNotReady    = errors.New("rate limit store: redis is not ready")
)
