package middlewares

import (
	"log/slog"
	"time"

	"github.com/dalcoin/site/internal"
)

// AccessLog writes one record per request once the handler returns. Status
// is the one the handler chose, even where HTMX saw 200 on the wire.
// Requests whose handler returned an error are logged at warn level; the
// ErrorHandler writes the response after this record.
func AccessLog() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			rw := c.ResponseWriter()
			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", rw.Status()),
				slog.Int64("bytes", rw.Size()),
				slog.Duration("duration", time.Since(start)),
				slog.Bool("htmx", c.IsHTMX()),
			}

			if err != nil {
				c.LogWarn("request", append(attrs, slog.Any("error", err))...)
				return err
			}
			c.LogInfo("request", attrs...)
			return nil
		}
	}
}
