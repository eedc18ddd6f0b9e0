package htmx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dalcoin/site/pkg/htmx"
)

func TestIsHTMX(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   bool
	}{
		{name: "true", header: "true", want: true},
		{name: "missing", header: "", want: false},
		{name: "false", header: "false", want: false},
		{name: "case sensitive", header: "True", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/kontakt", nil)
			if tt.header != "" {
				req.Header.Set(htmx.HeaderHXRequest, tt.header)
			}
			assert.Equal(t, tt.want, htmx.IsHTMX(req))
		})
	}
}

func TestIsBoostedAndTarget(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, htmx.IsBoosted(req))
	assert.Empty(t, htmx.Target(req))

	req.Header.Set(htmx.HeaderHXBoosted, "true")
	req.Header.Set(htmx.HeaderHXTarget, "contact-panel")
	assert.True(t, htmx.IsBoosted(req))
	assert.Equal(t, "contact-panel", htmx.Target(req))
}
