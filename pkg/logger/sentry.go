package logger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	Release     string `env:"SENTRY_RELEASE"`
	// ErrorsOnly limits forwarded logs to error level; warnings stay local.
	ErrorsOnly bool `env:"SENTRY_ERRORS_ONLY" envDefault:"false"`
}

// withSentry returns local unchanged when no DSN is set or Sentry fails to start.
func withSentry(local slog.Handler, cfg SentryConfig) slog.Handler {
	if cfg.DSN == "" {
		return local
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(local).Error("failed to initialize sentry", slog.String("error", err.Error()))
		return local
	}

	logLevels := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.ErrorsOnly {
		logLevels = []slog.Level{slog.LevelError}
	}

	remote := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevels,
	}.NewSentryHandler(context.Background())

	return fanoutHandler{local, remote}
}

// ErrFlushTimeout is returned by Flush when buffered events were not sent in time.
var ErrFlushTimeout = errors.New("logger: sentry flush timed out")

// Flush waits for buffered Sentry events until ctx expires, or two seconds
// without a deadline. It is a no-op when Sentry is not initialised.
func Flush(ctx context.Context) error {
	if sentry.CurrentHub().Client() == nil {
		return nil
	}

	timeout := 2 * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if !sentry.Flush(timeout) {
		return ErrFlushTimeout
	}
	return nil
}
