// Package internal holds the HTTP application core behind the root site package.
//
// Import "github.com/dalcoin/site" instead; it re-exports the public API.
//
// An App wraps a chi router. Handlers declare routes through the Router
// interface and receive a Context, which is also a context.Context:
//
//	func (h *ContactHandler) Routes(r internal.Router) {
//	    r.GET("/", h.page)
//	    r.POST("/kontakt", h.submit, middlewares.RateLimit(5, time.Minute))
//	}
//
//	func (h *ContactHandler) submit(c internal.Context) error {
//	    form, err := c.FormValues()
//	    if err != nil {
//	        return internal.ErrBadRequest("Ugyldig skjema", internal.WithError(err))
//	    }
//	    out := h.ctrl.Submit(c, contact.FromForm(form), button)
//	    ...
//	}
//
// Errors returned by handlers or middleware go to the ErrorHandler unless a
// response has already started. HTMX requests receive error statuses as 200 so
// that htmx swaps error fragments; ResponseWriter.Status keeps the real code
// for logging.
//
// Run listens, serves, and on SIGINT/SIGTERM drains connections within the
// shutdown timeout before running shutdown hooks in order. All hook errors
// are joined into the returned error.
package internal
