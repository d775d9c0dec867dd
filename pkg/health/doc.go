// Package health serves the liveness and readiness probes.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "redis": redis.Healthcheck(client),
//	}, health.WithLogger(log)))
//
// Readiness runs every check concurrently under one timeout and answers 200
// with {"status":"healthy"} or 503 with the per-check breakdown.
package health
