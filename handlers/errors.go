package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dalcoin/site"
	"github.com/dalcoin/site/middlewares"
	"github.com/dalcoin/site/pkg/htmx"
	"github.com/dalcoin/site/views"
)

// Generic visitor-facing messages.
const (
	MsgInternal = "Noe gikk galt hos oss. Prøv igjen om litt."
	MsgTimeout  = "Det tok for lang tid å behandle forespørselen. Prøv igjen."
	MsgNotFound = "Siden du leter etter finnes ikke."
)

// ErrorHandler renders errors as pages, or for htmx requests as a notice in
// the contact alert slot.
//
//	site.WithErrorHandler(handlers.ErrorHandler(cfg.Contact.SiteName))
func ErrorHandler(siteName string) site.ErrorHandler {
	return func(c site.Context, err error) error {
		code, title, message := http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), MsgInternal

		switch httpErr := site.AsHTTPError(err); {
		case httpErr != nil:
			code, title, message = httpErr.StatusCode(), httpErr.StatusText(), httpErr.Message
			for name, values := range httpErr.Headers {
				for _, v := range values {
					c.Response().Header().Add(name, v)
				}
			}
			if code >= http.StatusInternalServerError {
				c.LogError("request failed", slog.Int("status", code), slog.Any("error", err))
			}
		case middlewares.IsTimeoutError(err):
			code, title, message = http.StatusGatewayTimeout, http.StatusText(http.StatusGatewayTimeout), MsgTimeout
		case middlewares.IsPanicError(err):
			// already logged with its stack by Recover
		default:
			c.LogError("unhandled error", slog.Any("error", err))
		}

		if c.IsHTMX() {
			return c.Render(code,
				views.Alert(views.AlertError, message, false),
				htmx.WithRetarget("#"+views.ContactAlertID),
				htmx.WithReswap(htmx.SwapOuterHTML),
			)
		}
		return c.Render(code, views.ErrorPage(siteName, title, message))
	}
}

// NotFound renders the 404 page.
func NotFound(siteName string) site.HandlerFunc {
	return func(c site.Context) error {
		return c.Render(http.StatusNotFound, views.ErrorPage(siteName, "Fant ikke siden", MsgNotFound))
	}
}
