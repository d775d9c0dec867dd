package middlewares_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/pagecraft/contactd/internal"
)

type testContext struct {
	response *internal.ResponseWriter
	request  *http.Request
	logger   *slog.Logger
	logs     *bytes.Buffer
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	var logs bytes.Buffer
	return &testContext{
		response: internal.NewResponseWriter(w),
		request:  r,
		logs:     &logs,
		logger:   slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
}

// logLine decodes the first log record written through the context.
func (c *testContext) logLine() map[string]any {
	var m map[string]any
	line, _, _ := bytes.Cut(c.logs.Bytes(), []byte("\n"))
	_ = json.Unmarshal(line, &m)
	return m
}

func (c *testContext) Deadline() (time.Time, bool)    { return c.request.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}          { return c.request.Context().Done() }
func (c *testContext) Err() error                     { return c.request.Context().Err() }
func (c *testContext) Value(key any) any              { return c.request.Context().Value(key) }
func (c *testContext) Request() *http.Request         { return c.request }
func (c *testContext) Response() http.ResponseWriter  { return c.response }
func (c *testContext) Context() context.Context       { return c.request.Context() }
func (c *testContext) SetContext(ctx context.Context) { c.request = c.request.WithContext(ctx) }
func (c *testContext) Param(string) string            { return "" }
func (c *testContext) Header(name string) string      { return c.request.Header.Get(name) }
func (c *testContext) SetHeader(name, value string)   { c.response.Header().Set(name, value) }
func (c *testContext) BindJSON(any) error             { return nil }
func (c *testContext) Written() bool                  { return c.response.Written() }
func (c *testContext) Logger() *slog.Logger           { return c.logger }

func (c *testContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *testContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *testContext) Error(code int, message string, opts ...internal.HTTPErrorOption) *internal.HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func (c *testContext) LogDebug(msg string, attrs ...any) { c.logger.DebugContext(c, msg, attrs...) }
func (c *testContext) LogInfo(msg string, attrs ...any)  { c.logger.InfoContext(c, msg, attrs...) }
func (c *testContext) LogWarn(msg string, attrs ...any)  { c.logger.WarnContext(c, msg, attrs...) }
func (c *testContext) LogError(msg string, attrs ...any) { c.logger.ErrorContext(c, msg, attrs...) }

func (c *testContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *testContext) Get(key any) any {
	return c.request.Context().Value(key)
}
