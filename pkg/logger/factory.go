package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Open returns the destination for log records: stdout, plus a rotating
// file when cfg.File is set. Close releases the file; stdout stays open.
func Open(cfg Config) io.WriteCloser {
	if cfg.File == "" {
		return nopCloser{os.Stdout}
	}

	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.FileMaxSizeMB,
		MaxBackups: cfg.FileMaxBackups,
		MaxAge:     cfg.FileMaxAgeDays,
		Compress:   cfg.FileCompress,
	}
	return &teeWriter{Writer: io.MultiWriter(os.Stdout, file), closer: file}
}

// New creates a logger writing to w at cfg.Level.
func New(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewLogHandlerDecorator(newHandler(w, cfg), extractors...))
}

// NewNope creates a logger that discards everything.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

type teeWriter struct {
	io.Writer
	closer io.Closer
}

func (t *teeWriter) Close() error { return t.closer.Close() }
