package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pagecraft/contactd/internal"
	"github.com/pagecraft/contactd/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("converts a panic into PanicError", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/contact", nil))

		handler := middlewares.Recover()(func(c internal.Context) error {
			panic("template exploded")
		})

		err := handler(ctx)
		require.True(t, middlewares.IsPanicError(err))

		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.Equal(t, "template exploded", pe.Value)
		require.NotEmpty(t, pe.Stack)
		require.LessOrEqual(t, len(pe.Stack), middlewares.DefaultStackSize)
		require.Equal(t, "panic: template exploded", pe.Error())

		line := ctx.logLine()
		require.Equal(t, "panic recovered", line["msg"])
		require.Equal(t, "ERROR", line["level"])
		require.Equal(t, "/api/contact", line["path"])
		require.Equal(t, http.MethodPost, line["method"])
		require.NotEmpty(t, line["stack"])
	})

	t.Run("passes through when no panic", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		sentinel := errors.New("plain failure")

		err := middlewares.Recover()(func(c internal.Context) error {
			return sentinel
		})(ctx)

		require.ErrorIs(t, err, sentinel)
		require.False(t, middlewares.IsPanicError(err))
		require.Zero(t, ctx.logs.Len())
	})

	t.Run("omit stack", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		err := middlewares.Recover(middlewares.WithRecoverOmitStack())(func(c internal.Context) error {
			panic(errors.New("boom"))
		})(ctx)

		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.Nil(t, pe.Stack)
		require.NotContains(t, ctx.logLine(), "stack")
	})

	t.Run("custom stack size", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		err := middlewares.Recover(middlewares.WithRecoverStackSize(64))(func(c internal.Context) error {
			panic("small")
		})(ctx)

		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.LessOrEqual(t, len(pe.Stack), 64)
	})
}
