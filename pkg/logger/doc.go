// Package logger builds the service's structured logger on top of log/slog.
//
// Records are written as JSON (or text for local development) to stdout and,
// when a Sentry DSN is configured, fanned out to Sentry as well. Request-scoped
// values such as the request ID are attached through context extractors that run
// on every log call.
//
// # Usage
//
//	log := logger.New(logger.Config{Level: "debug"}, middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "contact request delivered", slog.String("reply_to", email))
//
// # Sentry
//
// Set SENTRY_DSN to forward warnings and errors. Error records become Sentry
// issues; warnings are stored as breadcrumb logs. An empty DSN or a failed Sentry
// initialisation leaves stdout logging untouched.
//
// # Context Extractors
//
// A ContextExtractor pulls one attribute out of a context:
//
//	type ContextExtractor func(ctx context.Context) (slog.Attr, bool)
//
// Returning false skips the attribute for that record.
package logger
