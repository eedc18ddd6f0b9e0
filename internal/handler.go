package internal

// Handler declares routes on a router.
//
// Example:
//
//	type ContactHandler struct {
//	    ctrl *contact.Controller
//	}
//
//	func (h *ContactHandler) Routes(r site.Router) {
//	    r.GET("/", h.page)
//	    r.POST("/kontakt", h.submit)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// A non-nil error is passed to the app's ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors returned from handlers.
// It is not called when the handler already wrote a response.
type ErrorHandler func(Context, error) error
