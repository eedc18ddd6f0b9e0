package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dalcoin/site/pkg/health"
)

func ok(context.Context) error { return nil }

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("no checks is healthy", func(t *testing.T) {
		t.Parallel()

		resp := health.Run(context.Background(), nil)
		assert.True(t, resp.Healthy())
		assert.Empty(t, resp.Checks)
	})

	t.Run("one failure makes the whole run unhealthy", func(t *testing.T) {
		t.Parallel()

		resp := health.Run(context.Background(), health.Checks{
			"redis":  ok,
			"mailer": func(context.Context) error { return errors.New("no api key") },
		})

		assert.False(t, resp.Healthy())
		assert.Equal(t, health.StatusHealthy, resp.Checks["redis"].Status)
		assert.Equal(t, health.StatusUnhealthy, resp.Checks["mailer"].Status)
		assert.Contains(t, resp.Checks["mailer"].Error, "no api key")
	})

	t.Run("slow check times out", func(t *testing.T) {
		t.Parallel()

		block := make(chan struct{})
		t.Cleanup(func() { close(block) })

		start := time.Now()
		resp := health.Run(context.Background(), health.Checks{
			"stuck": func(context.Context) error {
				<-block
				return nil
			},
		}, health.WithTimeout(20*time.Millisecond))

		assert.Less(t, time.Since(start), time.Second)
		assert.False(t, resp.Healthy())
		assert.Equal(t, health.ErrCheckTimeout.Error(), resp.Checks["stuck"].Error)
	})

	t.Run("panicking check is reported", func(t *testing.T) {
		t.Parallel()

		resp := health.Run(context.Background(), health.Checks{
			"broken": func(context.Context) error { panic("boom") },
		})
		assert.False(t, resp.Healthy())
		assert.Contains(t, resp.Checks["broken"].Error, "boom")
	})
}

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	health.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	failing := health.Checks{"redis": func(context.Context) error { return errors.New("refused") }}

	t.Run("plain text", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		health.ReadinessHandler(failing)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "Service Unavailable", rec.Body.String())
	})

	t.Run("json via query", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		health.ReadinessHandler(failing)(rec, httptest.NewRequest(http.MethodGet, "/health/ready?format=json", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var resp health.Response
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, health.StatusUnhealthy, resp.Status)
		assert.Contains(t, resp.Checks["redis"].Error, "refused")
	})

	t.Run("json via accept header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
		req.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		health.ReadinessHandler(health.Checks{"redis": ok})(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"healthy","checks":{"redis":{"status":"healthy"}}}`, rec.Body.String())
	})
}
