package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagecraft/contactd/pkg/ratelimit"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, goredis.UniversalClient) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestRedisStore_Increment(t *testing.T) {
	t.Parallel()

	t.Run("opens window and counts", func(t *testing.T) {
		t.Parallel()

		mr, client := newMiniRedis(t)
		store := ratelimit.NewRedisStore(client, "rl")
		ctx := context.Background()
		now := time.Now()

		e, err := store.Increment(ctx, "1.2.3.4", now, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 1, e.Count)
		assert.Equal(t, now.Add(time.Minute), e.WindowResetAt)

		e, err = store.Increment(ctx, "1.2.3.4", now, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 2, e.Count)

		assert.True(t, mr.Exists("rl:1.2.3.4"))
		assert.Equal(t, time.Minute, mr.TTL("rl:1.2.3.4"))
	})

	t.Run("starts over once the key expires", func(t *testing.T) {
		t.Parallel()

		mr, client := newMiniRedis(t)
		store := ratelimit.NewRedisStore(client, "rl")
		ctx := context.Background()

		_, err := store.Increment(ctx, "k", time.Now(), time.Second)
		require.NoError(t, err)
		_, err = store.Increment(ctx, "k", time.Now(), time.Second)
		require.NoError(t, err)

		mr.FastForward(2 * time.Second)

		e, err := store.Increment(ctx, "k", time.Now(), time.Second)
		require.NoError(t, err)
		assert.Equal(t, 1, e.Count)
	})
}

func TestRedisStore_WithLimiter(t *testing.T) {
	t.Parallel()

	_, client := newMiniRedis(t)
	l := ratelimit.New(ratelimit.NewRedisStore(client, "rl"), ratelimit.WithMax(2))
	ctx := context.Background()

	for range 2 {
		d, err := l.Allow(ctx, "k")
		require.NoError(t, err)
		require.True(t, d.Allowed)
	}

	d, err := l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
}

func TestRedisStore_GetSet(t *testing.T) {
	t.Parallel()

	_, client := newMiniRedis(t)
	store := ratelimit.NewRedisStore(client, "")
	ctx := context.Background()

	_, found, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "k", ratelimit.Entry{Count: 4, WindowResetAt: time.Now().Add(time.Minute)}))

	e, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 4, e.Count)
	assert.WithinDuration(t, time.Now().Add(time.Minute), e.WindowResetAt, 5*time.Second)

	require.NoError(t, store.Set(ctx, "k", ratelimit.Entry{Count: 5, WindowResetAt: time.Now().Add(-time.Second)}))
	_, found, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore_GetSet_Clock(t *testing.T) {
	t.Parallel()

	// A day ahead of the wall clock, so wall-clock arithmetic would be off by a day.
	fixed := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	mr, client := newMiniRedis(t)
	store := ratelimit.NewRedisStore(client, "rl", ratelimit.WithRedisClock(func() time.Time { return fixed }))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", ratelimit.Entry{Count: 2, WindowResetAt: fixed.Add(30 * time.Second)}))
	assert.Equal(t, 30*time.Second, mr.TTL("rl:k"))

	e, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 2, e.Count)
	assert.Equal(t, fixed.Add(30*time.Second), e.WindowResetAt)

	// Elapsed for the store clock, still ahead of the wall clock.
	require.NoError(t, store.Set(ctx, "k", ratelimit.Entry{Count: 3, WindowResetAt: fixed.Add(-time.Second)}))
	assert.False(t, mr.Exists("rl:k"))
}
