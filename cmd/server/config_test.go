package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dalcoin/site"
	"github.com/dalcoin/site/contact"
	"github.com/dalcoin/site/middlewares"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 40*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "post@dalcoin.no", cfg.Contact.To)
	assert.Equal(t, contact.ReportActualOutcome, cfg.Contact.Policy)
	assert.Equal(t, time.Second, cfg.Contact.SettleDelay)
	assert.Equal(t, 30*time.Second, cfg.Contact.SendTimeout)
	assert.Equal(t, "https://unpkg.com/htmx.org@2.0.4", cfg.Assets.HTMXSrc)
	assert.True(t, strings.HasPrefix(cfg.Assets.HTMXIntegrity, "sha384-"))
	assert.Equal(t, 5, cfg.Limit.Burst)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoadConfig_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"CONTACT_DELIVERY_POLICY=always\nCONTACT_TO=salg@dalcoin.no\nCONTACT_RATE_BURST=2\n",
	), 0o600))

	// godotenv does not override, and t.Setenv restores these afterwards
	t.Setenv("CONTACT_TO", "")
	require.NoError(t, os.Unsetenv("CONTACT_TO"))
	t.Setenv("CONTACT_DELIVERY_POLICY", "")
	require.NoError(t, os.Unsetenv("CONTACT_DELIVERY_POLICY"))
	t.Setenv("CONTACT_RATE_BURST", "3")

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, contact.AlwaysReportDelivered, cfg.Contact.Policy)
	assert.Equal(t, "salg@dalcoin.no", cfg.Contact.To)
	assert.Equal(t, 3, cfg.Limit.Burst, "environment wins over the file")
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("CONTACT_SETTLE_DELAY", "1m")
	t.Setenv("REQUEST_TIMEOUT", "30s")
	t.Setenv("CONTACT_DELIVERY_POLICY", "sometimes")

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

func TestLoadConfig_SendTimeoutFitsRequest(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "40s")
	t.Setenv("CONTACT_SEND_TIMEOUT", "39s")
	t.Setenv("CONTACT_SETTLE_DELAY", "2s")

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONTACT_SEND_TIMEOUT")
}

func TestRateLimitConfig_KeyHeader(t *testing.T) {
	t.Parallel()

	post := func(app *site.App, visitor string) int {
		req := httptest.NewRequest(http.MethodPost, "/kontakt", nil)
		req.RemoteAddr = "10.0.0.1:4000"
		req.Header.Set("CF-Connecting-IP", visitor)
		w := httptest.NewRecorder()
		app.ServeHTTP(w, req)
		return w.Code
	}
	newApp := func(cfg RateLimitConfig) *site.App {
		limiter := middlewares.NewRateLimiter(
			middlewares.WithRateLimit(time.Minute, 1),
			middlewares.WithRateLimitKey(cfg.key()),
		)
		t.Cleanup(func() { _ = limiter.Close() })
		return site.New(site.WithHandlers(routes(func(r site.Router) {
			r.POST("/kontakt", func(c site.Context) error {
				return c.NoContent(http.StatusNoContent)
			}, limiter.Middleware())
		})))
	}

	t.Run("header set", func(t *testing.T) {
		t.Parallel()

		app := newApp(RateLimitConfig{KeyHeader: "CF-Connecting-IP"})
		assert.Equal(t, http.StatusNoContent, post(app, "198.51.100.1"))
		assert.Equal(t, http.StatusNoContent, post(app, "198.51.100.2"))
		assert.Equal(t, http.StatusTooManyRequests, post(app, "198.51.100.1"))
	})

	t.Run("client ip only", func(t *testing.T) {
		t.Parallel()

		app := newApp(RateLimitConfig{})
		assert.Equal(t, http.StatusNoContent, post(app, "198.51.100.1"))
		assert.Equal(t, http.StatusTooManyRequests, post(app, "198.51.100.2"))
	})
}

type routes func(r site.Router)

func (f routes) Routes(r site.Router) { f(r) }
