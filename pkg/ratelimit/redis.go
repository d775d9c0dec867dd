package ratelimit

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrementScript opens a window on the first hit and reports the count and
// the remaining window in milliseconds. A key left without expiry gets one.
var incrementScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// RedisStore keeps entries as Redis counters that expire with their window.
// It implements Incrementer, so concurrent instances share one atomic counter.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithRedisClock sets the clock Get and Set convert expiries against.
// Pass the limiter's clock so both sides agree on the window.
func WithRedisClock(now func() time.Time) RedisStoreOption {
	return func(s *RedisStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewRedisStore creates a store on top of client. Keys are namespaced with prefix.
// The client lifecycle stays with the caller.
func NewRedisStore(client redis.UniversalClient, prefix string, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{client: client, prefix: prefix, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Increment applies the window step atomically on the Redis side.
func (s *RedisStore) Increment(ctx context.Context, key string, now time.Time, window time.Duration) (Entry, error) {
	res, err := incrementScript.Run(ctx, s.client, []string{s.key(key)}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return Entry{}, err
	}
	if len(res) != 2 {
		return Entry{}, ErrInvalidEntry
	}

	return Entry{
		Count:         int(res[0]),
		WindowResetAt: now.Add(time.Duration(res[1]) * time.Millisecond),
	}, nil
}

// Get reads the counter and its remaining lifetime.
func (s *RedisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	k := s.key(key)

	var (
		getCmd *redis.StringCmd
		ttlCmd *redis.DurationCmd
	)
	_, err := s.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		getCmd = p.Get(ctx, k)
		ttlCmd = p.PTTL(ctx, k)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return Entry{}, false, err
	}

	raw, err := getCmd.Result()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}

	count, err := strconv.Atoi(raw)
	if err != nil {
		return Entry{}, false, errors.Join(ErrInvalidEntry, err)
	}

	return Entry{
		Count:         count,
		WindowResetAt: s.now().Add(max(ttlCmd.Val(), 0)),
	}, true, nil
}

// Set writes the counter with an expiry matching the entry's window.
// Entries whose window has already elapsed are deleted instead.
func (s *RedisStore) Set(ctx context.Context, key string, e Entry) error {
	ttl := e.WindowResetAt.Sub(s.now())
	if ttl <= 0 {
		return s.client.Del(ctx, s.key(key)).Err()
	}
	return s.client.Set(ctx, s.key(key), e.Count, ttl).Err()
}

// Sweep is a no-op: Redis evicts expired counters on its own.
func (s *RedisStore) Sweep(context.Context, time.Time) error {
	return nil
}

func (s *RedisStore) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}
