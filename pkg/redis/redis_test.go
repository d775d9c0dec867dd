package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/pagecraft/contactd/pkg/redis"
)

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty url", func(t *testing.T) {
		t.Parallel()

		_, err := redis.Open(context.Background(), redis.Config{})
		require.ErrorIs(t, err, redis.ErrMissingURL)
		require.EqualError(t, err, "rate limit store: redis url is not set")
	})

	t.Run("rejects unknown scheme", func(t *testing.T) {
		t.Parallel()

		_, err := redis.Open(context.Background(), redis.Config{URL: "http://localhost:6379"})
		require.ErrorIs(t, err, redis.ErrInvalidURL)
		require.Contains(t, err.Error(), "rediss://")
	})

	t.Run("connects and passes healthcheck", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		ctx := context.Background()

		client, err := redis.Open(ctx, redis.Config{URL: "redis://" + mr.Addr() + "/0"})
		require.NoError(t, err)

		require.NoError(t, redis.Healthcheck(client)(ctx))
		require.NoError(t, redis.Shutdown(client)(ctx))
		require.ErrorIs(t, redis.Healthcheck(client)(ctx), redis.ErrNotReady)
	})

	t.Run("gives up when server is unreachable", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := redis.Open(context.Background(), redis.Config{URL: "redis://" + addr, RetryAttempts: 1})
		require.ErrorIs(t, err, redis.ErrUnreachable)
	})
}

func TestHealthcheck_NilClient(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, redis.Healthcheck(nil)(context.Background()), redis.ErrNotReady)
}
