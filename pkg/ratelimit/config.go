package ratelimit

import "time"

// Config holds the environment-driven limiter settings.
// The Redis connection itself is configured through pkg/redis.
type Config struct {
	KeyPrefix   string `env:"RATE_LIMIT_KEY_PREFIX" envDefault:"contactd:ratelimit"`
	WindowMS    int64  `env:"RATE_LIMIT_WINDOW_MS" envDefault:"60000"`
	MaxRequests int    `env:"RATE_LIMIT_MAX_REQUESTS" envDefault:"10"`
}

// Window converts WindowMS to a duration.
func (c Config) Window() time.Duration {
	return time.Duration(c.WindowMS) * time.Millisecond
}

// Options returns the limiter options described by the config.
func (c Config) Options() []Option {
	return []Option{WithWindow(c.Window()), WithMax(c.MaxRequests)}
}
