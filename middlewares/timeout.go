package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/dalcoin/site/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// Timeout gives the request context a deadline. The handler runs on the
// request goroutine and must honour ctx.Done(); when the deadline passed and
// nothing was written, a *TimeoutError goes to the ErrorHandler.
//
// A contact submission holds the request for the provider call plus the
// settle delay, so the timeout must exceed both.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()

			c.SetContext(ctx)
			err := next(c)

			if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Written() {
				c.LogWarn("request timeout", "timeout", timeout.String())
				return &TimeoutError{Duration: timeout, Err: err}
			}
			return err
		}
	}
}
