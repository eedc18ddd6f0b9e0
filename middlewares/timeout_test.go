package middlewares_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dalcoin/site/internal"
	"github.com/dalcoin/site/middlewares"
)

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("handler sees deadline", func(t *testing.T) {
		t.Parallel()

		var hasDeadline bool
		ta := newTestApp(func(c internal.Context) error {
			_, hasDeadline = c.Deadline()
			return c.String(http.StatusOK, "ok")
		}, middlewares.Timeout(time.Second))

		w := ta.get()
		assert.True(t, hasDeadline)
		assert.Equal(t, "ok", w.Body.String())
		assert.Empty(t, ta.errors)
	})

	t.Run("slow handler yields TimeoutError", func(t *testing.T) {
		t.Parallel()

		ta := newTestApp(func(c internal.Context) error {
			<-c.Done()
			return c.Err()
		}, middlewares.Timeout(20*time.Millisecond))

		ta.get()
		require.Len(t, ta.errors, 1)

		te, ok := middlewares.AsTimeoutError(ta.errors[0])
		require.True(t, ok)
		assert.Equal(t, 20*time.Millisecond, te.Duration)
		assert.True(t, middlewares.IsTimeoutError(ta.errors[0]))
		assert.ErrorIs(t, ta.errors[0], context.DeadlineExceeded)
		assert.False(t, middlewares.IsPanicError(ta.errors[0]))
	})

	t.Run("response already written wins", func(t *testing.T) {
		t.Parallel()

		ta := newTestApp(func(c internal.Context) error {
			_ = c.String(http.StatusOK, "partial")
			<-c.Done()
			return nil
		}, middlewares.Timeout(20*time.Millisecond))

		w := ta.get()
		assert.Equal(t, "partial", w.Body.String())
		assert.Empty(t, ta.errors)
	})

	t.Run("handler error kept", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		ta := newTestApp(func(internal.Context) error { return boom }, middlewares.Timeout(time.Second))

		ta.get()
		require.Len(t, ta.errors, 1)
		assert.Same(t, boom, ta.errors[0])
	})
}
