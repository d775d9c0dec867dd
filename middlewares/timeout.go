package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pagecraft/contactd/internal"
)

// DefaultTimeout is the default request deadline.
const DefaultTimeout = 30 * time.Second

// Timeout returns middleware that attaches a deadline to the request context.
// The handler runs on the request goroutine and is expected to honor
// ctx.Done(). If it returns after the deadline without having written a
// response, a *TimeoutError goes to the ErrorHandler instead of its result.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()
			c.SetContext(ctx)

			err := next(c)
			if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Written() {
				c.LogWarn("request timeout", slog.String("timeout", timeout.String()))
				return &TimeoutError{Duration: timeout}
			}
			return err
		}
	}
}
