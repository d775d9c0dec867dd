// Package logger builds the service's slog logger and its Sentry integration.
//
// Records are written as JSON (or text) to stdout, and additionally to a
// size-rotated file when [Config.File] is set. [NewLogHandlerDecorator]
// injects request-scoped attributes, such as the request id, through
// [ContextExtractor] functions evaluated on every record.
//
//	out := logger.Open(cfg)
//	defer out.Close()
//	log := logger.NewWithSentry(out, cfg, sentryCfg, middlewares.RequestIDExtractor())
//
// With a Sentry DSN, warn and error records are also shipped as Sentry logs.
// Sentry issues are raised only through [SentryReporter], which tags each
// report explicitly; log records never create issues, so a failure is not
// reported twice.
package logger
