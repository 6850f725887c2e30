// Package health serves liveness and readiness probes.
//
// Readiness runs named checks concurrently under a shared timeout:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "idna":  idna.Healthcheck(conv),
//	    "redis": redis.Healthcheck(client),
//	    "db":    db.Healthcheck(pool),
//	}, health.WithLogger(log)))
//
// Responses are plain text ("OK" or "Service Unavailable") unless the client
// asks for JSON with ?format=json or an Accept header.
package health
