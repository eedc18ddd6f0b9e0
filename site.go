package site

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/dalcoin/site/internal"
	"github.com/dalcoin/site/pkg/health"
	"github.com/dalcoin/site/pkg/logger"
)

// Type aliases - public API
type (
	// App is the HTTP application: routes, middleware, error handling and
	// graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// Component is the interface for renderable templates.
	Component = internal.Component

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// HTTPError is an error with an HTTP status and a visitor-facing message.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// Extractor reads a value such as a rate-limit key from a request.
	Extractor = internal.Extractor

	// ExtractorSource is one candidate source for an Extractor.
	ExtractorSource = internal.ExtractorSource

	// ContextExtractor extracts a slog attribute from context.
	ContextExtractor = logger.ContextExtractor

	// ResponseWriter tracks status and size and handles HTMX status rules.
	ResponseWriter = internal.ResponseWriter
)

// Constructors

// New creates an application. The App is immutable after creation.
//
//	app := site.New(
//	    site.WithLogger(log),
//	    site.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    site.WithHandlers(handlers.NewContact(ctrl, cfg.Contact.SiteName)),
//	)
//
//	err := app.Run(":8080", site.ShutdownHook(redis.Shutdown(client)))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// App options

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithMiddleware adds global middleware, outermost first.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithStaticFiles serves subDir of fsys under pattern. Directory listings are disabled.
//
//	site.WithStaticFiles("/static/", views.Static, "static")
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler sets the handler for errors returned from handlers and middleware.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithHealthChecks enables health endpoints.
// Liveness (/health/live) answers OK while the process runs.
// Readiness (/health/ready) runs all configured checks in parallel.
//
//	site.WithHealthChecks(
//	    site.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	    site.WithReadinessCheck("mailer", sender.Healthcheck),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// Health check options

// WithHealthTimeout bounds one readiness run.
func WithHealthTimeout(d time.Duration) HealthOption {
	return internal.WithHealthTimeout(d)
}

// WithReadinessCheck adds a named readiness check. A nil check is ignored,
// so optional dependencies can be passed unconditionally.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger overrides the app logger for server lifecycle messages.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout bounds connection draining and the shutdown hooks together.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// ShutdownHook registers a cleanup function. Hooks run in registration order
// after the server stopped accepting requests.
//
//	site.ShutdownHook(redis.Shutdown(client))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// ShutdownFunc adapts a Close-style function into a shutdown hook.
//
//	site.ShutdownHook(site.ShutdownFunc(limiter.Close))
func ShutdownFunc(fn func() error) func(context.Context) error {
	return internal.ShutdownFunc(fn)
}

// Errors

// AsHTTPError returns the HTTPError in err's chain, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// WithRetryAfter sets the Retry-After header on an HTTPError.
func WithRetryAfter(d time.Duration) HTTPErrorOption {
	return internal.WithRetryAfter(d)
}

// WithErrorCode tags an HTTPError with a machine-readable code.
func WithErrorCode(code string) HTTPErrorOption {
	return internal.WithErrorCode(code)
}

// WithError attaches the underlying cause to an HTTPError.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// Common HTTP errors.
var (
	ErrBadRequest         = internal.ErrBadRequest
	ErrNotFound           = internal.ErrNotFound
	ErrConflict           = internal.ErrConflict
	ErrUnprocessable      = internal.ErrUnprocessable
	ErrTooManyRequests    = internal.ErrTooManyRequests
	ErrInternal           = internal.ErrInternal
	ErrBadGateway         = internal.ErrBadGateway
	ErrServiceUnavailable = internal.ErrServiceUnavailable
)

// Extractors

// NewExtractor tries sources in order and returns the first non-empty value.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return internal.NewExtractor(sources...)
}

// FromHeader reads a request header.
func FromHeader(name string) ExtractorSource {
	return internal.FromHeader(name)
}

// FromClientIP reads the visitor address, honouring proxy headers.
func FromClientIP() ExtractorSource {
	return internal.FromClientIP()
}
