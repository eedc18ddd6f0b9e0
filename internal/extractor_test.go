package internal_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dalcoin/site/internal"
)

func TestExtractor(t *testing.T) {
	t.Parallel()

	ext := internal.NewExtractor(
		internal.FromHeader("X-Visitor"),
		internal.FromForm("token"),
		internal.FromQuery("v"),
		internal.FromClientIP(),
	)

	var (
		got   string
		found bool
	)
	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.POST("/", func(c internal.Context) error {
			got, found = ext.Extract(c)
			return c.NoContent(http.StatusNoContent)
		})
	})))

	tests := []struct {
		name   string
		header string
		form   string
		query  string
		remote string
		want   string
	}{
		{name: "header wins", header: "h", form: "f", query: "q", want: "h"},
		{name: "form next", form: "f", query: "q", want: "f"},
		{name: "query next", query: "q", want: "q"},
		{name: "client ip last", remote: "203.0.113.7:51234", want: "203.0.113.7"},
	}

	for _, tt := range tests {
		target := "/"
		if tt.query != "" {
			target += "?v=" + tt.query
		}
		body := url.Values{}
		if tt.form != "" {
			body.Set("token", tt.form)
		}

		req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if tt.header != "" {
			req.Header.Set("X-Visitor", tt.header)
		}
		if tt.remote != "" {
			req.RemoteAddr = tt.remote
		}

		app.ServeHTTP(httptest.NewRecorder(), req)
		assert.True(t, found, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestExtractor_Miss(t *testing.T) {
	t.Parallel()

	ext := internal.NewExtractor(internal.FromHeader("X-Missing"))

	found := true
	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.GET("/", func(c internal.Context) error {
			_, found = ext.Extract(c)
			return nil
		})
	})))

	app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, found)
}
