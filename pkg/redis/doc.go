// Package redis opens the optional Redis connection that backs the shared
// rate-limit store when contactd runs as several instances.
//
//	client, err := redis.Open(ctx, redis.Config{URL: os.Getenv("RATE_LIMIT_REDIS_URL")})
//	if err != nil {
//		return err
//	}
//	store := ratelimit.NewRedisStore(client, "contactd:ratelimit")
//
// [Open] pings the server with a linear backoff before giving up, so a
// service started next to its Redis container tolerates the usual startup
// race. [Healthcheck] adapts the client to a readiness check and [Shutdown]
// to a shutdown hook.
package redis
