package middlewares

import (
	"log/slog"
	"strings"
	"time"

	"github.com/pagecraft/contactd/internal"
)

// AccessLog returns middleware that logs one line per request after the
// response is written. Requests under the skipped path prefixes log at debug.
func AccessLog(skip ...string) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			status := 0
			if rw, ok := c.Response().(interface{ Status() int }); ok {
				status = rw.Status()
			}

			level := slog.LevelInfo
			path := c.Request().URL.Path
			for _, prefix := range skip {
				if strings.HasPrefix(path, prefix) {
					level = slog.LevelDebug
					break
				}
			}

			c.Logger().Log(c.Context(), level, "request completed",
				slog.String("method", c.Request().Method),
				slog.String("path", path),
				slog.Int("status", status),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
			return err
		}
	}
}
