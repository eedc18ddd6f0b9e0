// Package site is the DALCOIN website server: a server-rendered landing
// page whose contact form turns a visitor's project description into one
// email to the company inbox.
//
// The root package exposes the small HTTP application layer the site is
// built on. Routing uses chi, pages are templ components, and the form is
// progressively enhanced with htmx: plain posts get full pages, htmx posts
// get fragments.
//
// # Handlers
//
// Handlers implement [Handler] to declare routes:
//
//	type Contact struct {
//	    ctrl *contact.Controller
//	}
//
//	func (h *Contact) Routes(r site.Router) {
//	    r.GET("/", h.page)
//	    r.POST("/kontakt", h.submit)
//	}
//
// A [HandlerFunc] returns an error; the app's [ErrorHandler] turns it into a
// response. [HTTPError] carries the status, a visitor-facing message and
// extra headers such as Retry-After.
//
// # Rendering
//
//	return c.RenderPartial(http.StatusUnprocessableEntity,
//	    views.ContactPage(site, form),   // plain form post
//	    views.ContactSection(form),      // htmx swap
//	    htmx.WithTriggerAfterSettle("contact:focus"),
//	)
//
// Error statuses are sent as 200 to htmx so the fragment is swapped in;
// [ResponseWriter.Status] keeps the real code for logs.
//
// # Lifecycle
//
// [App.Run] serves until SIGINT/SIGTERM, drains connections, then runs
// shutdown hooks in order:
//
//	err := app.Run(cfg.Addr,
//	    site.ShutdownHook(site.ShutdownFunc(limiter.Close)),
//	    site.ShutdownHook(redis.Shutdown(client)),
//	)
//
// # Packages
//
//   - contact: validation, message formatting and the submission controller
//   - handlers: HTTP handlers for the pages and the contact form
//   - views: templ components
//   - middlewares: request id, recover, timeout, access log, rate limit
//   - pkg/mailer, pkg/mailer/resend: email composition and the Resend sender
//   - pkg/cache, pkg/redis: claim store for in-flight submissions
//   - pkg/logger: slog with context extractors and optional Sentry
package site
