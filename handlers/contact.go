package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dalcoin/site"
	"github.com/dalcoin/site/contact"
	"github.com/dalcoin/site/pkg/htmx"
	"github.com/dalcoin/site/pkg/id"
	"github.com/dalcoin/site/views"
)

// Client-side events. EventInvalid carries {"field": <first invalid id>};
// EventFocus and EventDelivered fire after the swap settles and drive
// scrolling in the page script.
const (
	EventInvalid   = "contact:invalid"
	EventFocus     = "contact:focus"
	EventDelivered = "contact:delivered"
	EventFailed    = "contact:failed"
)

// Contact serves the landing page and the contact form.
type Contact struct {
	ctrl     *contact.Controller
	site     string
	submitMW []site.Middleware
}

// ContactOption configures a Contact handler.
type ContactOption func(*Contact)

// WithSubmitMiddleware wraps only the form post, e.g. with a rate limiter.
func WithSubmitMiddleware(mw ...site.Middleware) ContactOption {
	return func(h *Contact) {
		h.submitMW = append(h.submitMW, mw...)
	}
}

// NewContact creates the contact handler. siteName titles the pages.
func NewContact(ctrl *contact.Controller, siteName string, opts ...ContactOption) *Contact {
	if siteName == "" {
		siteName = contact.DefaultSiteName
	}
	h := &Contact{ctrl: ctrl, site: siteName}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes implements site.Handler.
func (h *Contact) Routes(r site.Router) {
	r.GET("/", h.page)
	r.GET("/kontakt/skjema", h.form)
	r.POST(views.ContactAction, h.submit, h.submitMW...)
}

func (h *Contact) page(c site.Context) error {
	return c.Render(http.StatusOK, views.ContactPage(h.site, views.ContactForm{Token: contact.NewToken()}))
}

// form returns a fresh, empty form section.
func (h *Contact) form(c site.Context) error {
	f := views.ContactForm{Token: contact.NewToken()}
	return c.RenderPartial(http.StatusOK, views.ContactPage(h.site, f), views.ContactSection(f))
}

func (h *Contact) submit(c site.Context) error {
	values, err := c.FormValues()
	if err != nil {
		return site.ErrBadRequest("Skjemaet kunne ikke leses. Last siden på nytt og prøv igjen.",
			site.WithError(err),
			site.WithErrorCode("bad_form"),
		)
	}

	req := contact.FromForm(values)
	button := contact.NewButton(views.SubmitLabel)

	out := h.ctrl.Submit(c, req, button)

	f := views.ContactForm{
		Request: req,
		Button:  button,
		Token:   req.Token,
	}
	if !id.IsULID(f.Token) {
		f.Token = contact.NewToken()
	}

	switch out.State {
	case contact.Delivered:
		return c.RenderPartial(http.StatusOK,
			views.ContactSuccessPage(h.site, req.Name),
			views.ContactSuccess(req.Name),
			htmx.WithTriggerAfterSettle(EventDelivered),
		)

	case contact.Invalid:
		f.Errors = out.Validation
		field, _ := out.Validation.FirstInvalid()
		c.LogDebug("contact form invalid", slog.Any("fields", out.Validation.Invalid()))
		return h.section(c, http.StatusUnprocessableEntity, f,
			htmx.WithTriggerDetail(EventInvalid, map[string]string{"field": string(field)}),
			htmx.WithTriggerAfterSettle(EventFocus),
		)

	case contact.DeliveryFailed:
		f.Notice = views.NoticeDeliveryFailed
		f.NoticeKind = views.AlertError
		f.Button = contact.NewButton(views.RetryLabel)
		return h.section(c, http.StatusBadGateway, f, htmx.WithTrigger(EventFailed))

	case contact.Rejected:
		if errors.Is(out.Err, contact.ErrSubmissionInProgress) && c.IsHTMX() {
			return c.Render(http.StatusConflict,
				views.Alert(views.AlertInfo, views.NoticeInProgress, false),
				htmx.WithRetarget("#"+views.ContactAlertID),
				htmx.WithReswap(htmx.SwapOuterHTML),
			)
		}

		f.NoticeKind = views.AlertInfo
		f.Notice = views.NoticeInProgress
		if errors.Is(out.Err, contact.ErrInvalidToken) {
			f.Token = contact.NewToken()
			f.Notice = views.NoticeExpired
		}
		return h.section(c, http.StatusConflict, f)
	}

	return site.ErrInternal("Uventet tilstand i kontaktskjemaet.",
		site.WithError(errors.New("contact: unexpected state "+out.State.String())),
	)
}

// section renders the contact section, inside the full page for plain posts.
func (h *Contact) section(c site.Context, code int, f views.ContactForm, opts ...htmx.RenderOption) error {
	return c.RenderPartial(code, views.ContactPage(h.site, f), views.ContactSection(f), opts...)
}
