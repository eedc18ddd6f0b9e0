package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dalcoin/site"
	"github.com/dalcoin/site/contact"
	"github.com/dalcoin/site/handlers"
	"github.com/dalcoin/site/middlewares"
	"github.com/dalcoin/site/pkg/cache"
	"github.com/dalcoin/site/pkg/htmx"
	"github.com/dalcoin/site/pkg/id"
	"github.com/dalcoin/site/pkg/mailer"
	"github.com/dalcoin/site/views"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendRaw(ctx context.Context, email *mailer.Email) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockMailer) Send(ctx context.Context, params mailer.SendParams) error {
	return m.Called(ctx, params).Error(0)
}

type fixture struct {
	app    *site.App
	mailer *mockMailer
	guard  *contact.Guard
}

func newFixture(t *testing.T, opts ...handlers.ContactOption) *fixture {
	t.Helper()

	claims := cache.NewMemory[string]()
	t.Cleanup(func() { _ = claims.Close() })

	m := &mockMailer{}
	guard := contact.NewGuard(claims, time.Minute)
	ctrl := contact.NewController(m, contact.Config{SettleDelay: 0}, contact.WithGuard(guard))

	app := site.New(
		site.WithMiddleware(middlewares.Recover()),
		site.WithHandlers(handlers.NewContact(ctrl, "DALCOIN", opts...)),
		site.WithErrorHandler(handlers.ErrorHandler("DALCOIN")),
		site.WithNotFoundHandler(handlers.NotFound("DALCOIN")),
	)
	return &fixture{app: app, mailer: m, guard: guard}
}

func validForm(token string) url.Values {
	return url.Values{
		"name":        {"Kari Nordmann"},
		"email":       {"kari@example.no"},
		"phone":       {"+47 912 34 567"},
		"address":     {"Storgata 1, Oslo"},
		"floorType":   {"parkett"},
		"size":        {"20-50"},
		"description": {"Sliping og lakk av stue."},
		"siteVisit":   {"on"},
		"token":       {token},
	}
}

func (f *fixture) post(form url.Values, hx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/kontakt", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = "192.0.2.10:5555"
	if hx {
		req.Header.Set(htmx.HeaderHXRequest, "true")
	}

	w := httptest.NewRecorder()
	f.app.ServeHTTP(w, req)
	return w
}

func (f *fixture) get(path string, hx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if hx {
		req.Header.Set(htmx.HeaderHXRequest, "true")
	}

	w := httptest.NewRecorder()
	f.app.ServeHTTP(w, req)
	return w
}

var tokenRe = regexp.MustCompile(`name="token" value="([^"]*)"`)

func renderedToken(t *testing.T, body string) string {
	t.Helper()

	m := tokenRe.FindStringSubmatch(body)
	require.Len(t, m, 2, "form has a token field")
	return m[1]
}

func TestContact_Page(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	w := f.get("/", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<!doctype html>")
	assert.True(t, id.IsULID(renderedToken(t, w.Body.String())))

	second := renderedToken(t, f.get("/", false).Body.String())
	assert.NotEqual(t, renderedToken(t, w.Body.String()), second, "each render gets its own token")

	w = f.get("/kontakt/skjema", true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), `<div id="contact">`))
}

func TestContact_Submit_Delivered(t *testing.T) {
	t.Parallel()

	for _, hx := range []bool{true, false} {
		f := newFixture(t)
		f.mailer.On("SendRaw", mock.Anything, mock.MatchedBy(func(e *mailer.Email) bool {
			return e.Subject == "Ny henvendelse fra Kari Nordmann" &&
				e.ReplyTo == "kari@example.no" &&
				strings.Contains(e.Text, "Type gulv: Parkett/tregulv") &&
				strings.Contains(e.Text, "Ønsker befaring: Ja")
		})).Return(nil).Once()

		w := f.post(validForm(contact.NewToken()), hx)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `id="formSuccess"`)
		assert.Contains(t, w.Body.String(), "Takk for henvendelsen, Kari Nordmann!")
		assert.NotContains(t, w.Body.String(), "<form")
		if hx {
			assert.Equal(t, handlers.EventDelivered, w.Header().Get(htmx.HeaderHXTriggerAfterSettle))
		} else {
			assert.Contains(t, w.Body.String(), "<!doctype html>")
		}
		f.mailer.AssertExpectations(t)
	}
}

func TestContact_Submit_Invalid(t *testing.T) {
	t.Parallel()

	form := validForm(contact.NewToken())
	form.Set("description", "   ")
	form.Set("name", "<b>Kari</b>")

	t.Run("htmx", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		w := f.post(form, true)

		assert.Equal(t, http.StatusOK, w.Code, "htmx swaps 2xx only")
		body := w.Body.String()
		assert.Contains(t, body, `id="description" name="description" class="form-control error" aria-invalid="true" aria-describedby="descriptionError" autofocus`)
		assert.Contains(t, body, contact.MsgDescriptionRequired)
		assert.Contains(t, body, `value="Kari"`, "markup stripped, value kept")
		assert.Equal(t, form.Get("token"), renderedToken(t, body))

		var trigger map[string]map[string]string
		require.NoError(t, json.Unmarshal([]byte(w.Header().Get(htmx.HeaderHXTrigger)), &trigger))
		assert.Equal(t, "description", trigger[handlers.EventInvalid]["field"])
		assert.Equal(t, handlers.EventFocus, w.Header().Get(htmx.HeaderHXTriggerAfterSettle))

		f.mailer.AssertNotCalled(t, "SendRaw", mock.Anything, mock.Anything)
	})

	t.Run("plain post", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		w := f.post(form, false)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "<!doctype html>")
		f.mailer.AssertNotCalled(t, "SendRaw", mock.Anything, mock.Anything)
	})
}

func TestContact_Submit_DeliveryFailed(t *testing.T) {
	t.Parallel()

	for _, hx := range []bool{true, false} {
		f := newFixture(t)
		f.mailer.On("SendRaw", mock.Anything, mock.Anything).Return(errors.Join(mailer.ErrSendFailed, errors.New("resend: 500"))).Once()

		form := validForm(contact.NewToken())
		w := f.post(form, hx)

		body := w.Body.String()
		assert.Contains(t, body, views.NoticeDeliveryFailed)
		assert.Contains(t, body, `<span class="btn__label">`+views.RetryLabel+`</span>`)
		assert.Contains(t, body, `value="Kari Nordmann"`)
		assert.Contains(t, body, "Sliping og lakk av stue.")
		assert.NotContains(t, body, "resend: 500")

		if hx {
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, handlers.EventFailed, w.Header().Get(htmx.HeaderHXTrigger))
		} else {
			assert.Equal(t, http.StatusBadGateway, w.Code)
		}

		// the claim was released, so the retry goes through
		f.mailer.On("SendRaw", mock.Anything, mock.Anything).Return(nil).Once()
		assert.Contains(t, f.post(form, hx).Body.String(), `id="formSuccess"`)
	}
}

func TestContact_Submit_Rejected(t *testing.T) {
	t.Parallel()

	t.Run("in progress", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		token := contact.NewToken()
		release, err := f.guard.Acquire(context.Background(), token)
		require.NoError(t, err)
		defer release()

		w := f.post(validForm(token), true)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "#"+views.ContactAlertID, w.Header().Get(htmx.HeaderHXRetarget))
		assert.Equal(t, string(htmx.SwapOuterHTML), w.Header().Get(htmx.HeaderHXReswap))
		assert.Contains(t, w.Body.String(), views.NoticeInProgress)
		assert.NotContains(t, w.Body.String(), "<form")

		w = f.post(validForm(token), false)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), views.NoticeInProgress)

		f.mailer.AssertNotCalled(t, "SendRaw", mock.Anything, mock.Anything)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		w := f.post(validForm(""), false)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), views.NoticeExpired)
		assert.True(t, id.IsULID(renderedToken(t, w.Body.String())), "a fresh token is issued")
		assert.Contains(t, w.Body.String(), `value="Kari Nordmann"`)
	})
}

func TestContact_Submit_RateLimited(t *testing.T) {
	t.Parallel()

	limiter := middlewares.NewRateLimiter(middlewares.WithRateLimit(time.Hour, 1))
	t.Cleanup(func() { _ = limiter.Close() })

	f := newFixture(t, handlers.WithSubmitMiddleware(limiter.Middleware()))
	f.mailer.On("SendRaw", mock.Anything, mock.Anything).Return(nil).Once()

	assert.Equal(t, http.StatusOK, f.post(validForm(contact.NewToken()), true).Code)

	w := f.post(validForm(contact.NewToken()), true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "#"+views.ContactAlertID, w.Header().Get(htmx.HeaderHXRetarget))
	assert.Contains(t, w.Body.String(), "alert--error")

	w = f.post(validForm(contact.NewToken()), false)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "<!doctype html>")

	f.mailer.AssertNumberOfCalls(t, "SendRaw", 1)
}
