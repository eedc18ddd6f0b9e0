// Package redis opens go-redis clients with pool defaults and connection retry.
//
// Redis is optional for the contact service: when REDIS_URL is set, submission
// claims move from process memory to Redis so every replica sees them.
//
//	client, err := redis.Open(ctx, cfg.Redis.URL, redis.WithRetry(3, time.Second))
//	if err != nil {
//	    return err
//	}
//	app := site.New(site.WithHealthChecks(site.WithReadinessCheck("redis", redis.Healthcheck(client))))
//	err = app.Run(addr, site.ShutdownHook(redis.Shutdown(client)))
package redis
