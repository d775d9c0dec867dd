package middlewares_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pagecraft/contactd/internal"
	"github.com/pagecraft/contactd/middlewares"
	"github.com/pagecraft/contactd/pkg/logger"
)

func runRequestID(t *testing.T, headers map[string]string, opts ...middlewares.RequestIDOption) (string, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	ctx := newTestContext(rec, req)

	var seen string
	handler := middlewares.RequestID(opts...)(func(c internal.Context) error {
		seen = middlewares.GetRequestID(c)
		return nil
	})

	require.NoError(t, handler(ctx))
	return seen, rec
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates a UUIDv7 when absent", func(t *testing.T) {
		t.Parallel()

		id, rec := runRequestID(t, nil)

		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		require.Equal(t, uuid.Version(7), parsed.Version())
		require.Equal(t, id, rec.Header().Get("X-Request-ID"))
	})

	t.Run("keeps upstream ID", func(t *testing.T) {
		t.Parallel()

		id, rec := runRequestID(t, map[string]string{"X-Request-ID": "edge-123"})
		require.Equal(t, "edge-123", id)
		require.Equal(t, "edge-123", rec.Header().Get("X-Request-ID"))
	})

	t.Run("falls back to correlation header", func(t *testing.T) {
		t.Parallel()

		id, _ := runRequestID(t, map[string]string{"X-Correlation-ID": "corr-9"})
		require.Equal(t, "corr-9", id)
	})

	t.Run("replaces malformed upstream ID", func(t *testing.T) {
		t.Parallel()

		for _, bad := range []string{"has space", strings.Repeat("a", 129), "tab\there"} {
			id, _ := runRequestID(t, map[string]string{"X-Request-ID": bad})
			require.NotEqual(t, bad, id)
			require.NotEmpty(t, id)
		}
	})

	t.Run("custom generator and headers", func(t *testing.T) {
		t.Parallel()

		id, rec := runRequestID(t,
			map[string]string{"X-Request-ID": "ignored"},
			middlewares.WithRequestIDHeaders("X-Trace"),
			middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
			middlewares.WithRequestIDResponseHeader("X-Trace"),
		)
		require.Equal(t, "fixed", id)
		require.Equal(t, "fixed", rec.Header().Get("X-Trace"))
	})
}

func TestGetRequestID_Missing(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Empty(t, middlewares.GetRequestID(ctx))
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(&buf, logger.Config{Level: slog.LevelInfo}, middlewares.RequestIDExtractor())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := newTestContext(httptest.NewRecorder(), req)

	handler := middlewares.RequestID(middlewares.WithRequestIDGenerator(func() string { return "req-42" }))(
		func(c internal.Context) error {
			log.InfoContext(c, "inside")
			return nil
		})
	require.NoError(t, handler(ctx))
	require.Contains(t, buf.String(), `"request_id":"req-42"`)

	buf.Reset()
	log.InfoContext(context.Background(), "outside")
	require.NotContains(t, buf.String(), "request_id")
}
