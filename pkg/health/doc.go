// Package health serves liveness and readiness endpoints.
//
// Liveness answers OK while the process runs. Readiness runs every named
// check in parallel under a shared timeout and answers 503 when any fails:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "redis":  redis.Healthcheck(client),
//	    "mailer": resendSender.Healthcheck,
//	}, health.WithTimeout(2*time.Second)))
//
// Responses are plain text ("OK" / "Service Unavailable") unless the client
// sends Accept: application/json or ?format=json, in which case every check
// is reported individually:
//
//	{"status":"unhealthy","checks":{"redis":{"status":"unhealthy","error":"..."}}}
package health
