// Package middlewares provides the HTTP middleware the site runs with.
//
// # Request ID
//
// RequestID assigns a ULID to each request, or reuses one from X-Request-ID
// or X-Correlation-ID. Pair it with RequestIDExtractor so every log record
// written with the request context carries request_id:
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//
// # Recover
//
// Recover converts panics into *PanicError for the app's ErrorHandler.
//
// # Timeout
//
// Timeout attaches a deadline to the request context. The handler keeps
// running on the request goroutine; when it returns after the deadline
// without having written, a *TimeoutError is returned.
//
// # Access log
//
// AccessLog writes one record per request with the status the handler chose.
//
// # Rate limit
//
// RateLimiter keeps a token bucket per visitor (client IP by default) and
// answers over-limit requests with 429 and Retry-After:
//
//	limiter := middlewares.NewRateLimiter(middlewares.WithRateLimit(time.Minute, 5))
//	defer limiter.Close()
//
//	r.POST("/kontakt", h.submit, limiter.Middleware())
//
// # Order
//
//	site.WithMiddleware(
//	    middlewares.RequestID(),
//	    middlewares.AccessLog(),
//	    middlewares.Recover(),
//	    middlewares.Timeout(40*time.Second),
//	)
package middlewares
