package logger

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// levelNever is above every level the service logs at. It is used as the
// Sentry event level so that log records never create issues.
const levelNever = slog.LevelError + 100

// NewWithSentry creates a logger that writes to w and, when scfg.DSN is set,
// forwards warn and error records to Sentry as logs. Without a DSN, or if
// Sentry fails to initialize, it behaves like New.
func NewWithSentry(w io.Writer, cfg Config, scfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	local := newHandler(w, cfg)
	if scfg.DSN == "" {
		return slog.New(NewLogHandlerDecorator(local, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         scfg.DSN,
		Environment: scfg.Environment,
		Release:     scfg.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(local).Error("failed to initialize sentry", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(local, extractors...))
	}

	remote := sentryslog.Option{
		EventLevel: []slog.Level{levelNever},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	return slog.New(NewLogHandlerDecorator(newMultiHandler(local, remote), extractors...))
}

// FlushSentry returns a shutdown hook that waits up to timeout for buffered
// Sentry events to be delivered.
func FlushSentry(timeout time.Duration) func(context.Context) error {
	return func(context.Context) error {
		sentry.Flush(timeout)
		return nil
	}
}

// SentryReporter raises Sentry issues for errors, tagged per report.
type SentryReporter struct {
	hub *sentry.Hub
}

// NewSentryReporter creates a reporter on hub. A nil hub means the global
// hub configured by NewWithSentry.
func NewSentryReporter(hub *sentry.Hub) *SentryReporter {
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	return &SentryReporter{hub: hub}
}

// Report captures err with tags. A hub stored in ctx takes precedence.
func (r *SentryReporter) Report(ctx context.Context, err error, tags map[string]string) {
	if err == nil {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = r.hub.Clone()
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		hub.CaptureException(err)
	})
}
