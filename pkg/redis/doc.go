// Package redis opens go-redis clients for the shared conversion cache.
//
// [Open] validates the URL, applies pool and timeout settings and pings the
// server, retrying with a linearly growing wait. [Healthcheck] and
// [Shutdown] plug the client into the readiness probe and the server
// shutdown sequence:
//
//	client, err := redis.Open(ctx, cfg.Cache.RedisURL, redis.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	checks := health.Checks{"redis": redis.Healthcheck(client)}
//	hooks := []func(context.Context) error{redis.Shutdown(client)}
package redis
