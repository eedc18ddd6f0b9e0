package middlewares

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/dalcoin/site/internal"
	"github.com/dalcoin/site/pkg/cache"
)

// Rate limit defaults: five submissions per visitor, one more every minute.
const (
	DefaultRateLimitEvery = time.Minute
	DefaultRateLimitBurst = 5
)

// RateLimitMessage is shown to a visitor who posts too often.
const RateLimitMessage = "Du har sendt mange henvendelser på kort tid. Vent litt og prøv igjen."

// RateLimiter keeps one token bucket per visitor key.
type RateLimiter struct {
	store cache.Cache[*rate.Limiter]
	key   internal.Extractor
	every time.Duration
	burst int
	ttl   time.Duration
	owned bool
}

// RateLimitOption configures a RateLimiter.
type RateLimitOption func(*RateLimiter)

// WithRateLimit allows burst requests at once, refilled one per every.
func WithRateLimit(every time.Duration, burst int) RateLimitOption {
	return func(l *RateLimiter) {
		if every > 0 {
			l.every = every
		}
		if burst > 0 {
			l.burst = burst
		}
	}
}

// WithRateLimitKey sets how visitors are told apart. Default: client IP.
func WithRateLimitKey(ext internal.Extractor) RateLimitOption {
	return func(l *RateLimiter) {
		l.key = ext
	}
}

// WithRateLimitStore keeps buckets in c instead of a private memory cache.
// The store must hold live pointers, so only an in-process cache fits.
func WithRateLimitStore(c cache.Cache[*rate.Limiter]) RateLimitOption {
	return func(l *RateLimiter) {
		if c != nil {
			l.store = c
		}
	}
}

// NewRateLimiter creates a limiter. Close it on shutdown.
//
//	limiter := middlewares.NewRateLimiter(middlewares.WithRateLimit(time.Minute, 5))
//	r.POST("/kontakt", h.submit, limiter.Middleware())
func NewRateLimiter(opts ...RateLimitOption) *RateLimiter {
	l := &RateLimiter{
		key:   internal.NewExtractor(internal.FromClientIP()),
		every: DefaultRateLimitEvery,
		burst: DefaultRateLimitBurst,
	}
	for _, opt := range opts {
		opt(l)
	}

	// an idle bucket is full again after burst*every; dropping it then loses nothing
	l.ttl = time.Duration(l.burst) * l.every

	if l.store == nil {
		l.store = cache.NewMemory[*rate.Limiter](
			cache.WithDefaultTTL(l.ttl),
			cache.WithMaxEntries(10000),
		)
		l.owned = true
	}
	return l
}

// Allow takes a token for key. When none is left it returns the wait until
// the next one.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration) {
	lim, err := cache.GetOrSet(ctx, l.store, key, func(context.Context) (*rate.Limiter, time.Duration, error) {
		return rate.NewLimiter(rate.Every(l.every), l.burst), l.ttl, nil
	})
	if err != nil {
		return true, 0
	}
	// sliding expiry: the entry outlives the bucket's last use by ttl
	_ = l.store.Set(ctx, key, lim, l.ttl)

	now := time.Now()
	if lim.AllowN(now, 1) {
		return true, 0
	}

	r := lim.ReserveN(now, 1)
	wait := r.DelayFrom(now)
	r.CancelAt(now)
	return false, wait
}

// Middleware rejects requests over the limit with a 429 HTTPError carrying
// Retry-After.
func (l *RateLimiter) Middleware() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			key, ok := l.key.Extract(c)
			if !ok {
				key = "unknown"
			}

			allowed, wait := l.Allow(c, key)
			if !allowed {
				c.LogWarn("rate limit exceeded", slog.String("key", key), slog.Duration("retry_after", wait))
				return internal.ErrTooManyRequests(RateLimitMessage,
					internal.WithErrorCode("rate_limited"),
					internal.WithRetryAfter(wait),
				)
			}
			return next(c)
		}
	}
}

// Close releases the bucket store if the limiter created it.
func (l *RateLimiter) Close() error {
	if !l.owned {
		return nil
	}
	return l.store.Close()
}
