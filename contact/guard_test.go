package contact_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dalcoin/site/contact"
	"github.com/dalcoin/site/pkg/cache"
	"github.com/dalcoin/site/pkg/id"
)

func TestGuard(t *testing.T) {
	t.Parallel()

	claims := cache.NewMemory[string](cache.WithCleanupInterval(0))
	t.Cleanup(func() { _ = claims.Close() })
	g := contact.NewGuard(claims, time.Minute)
	ctx := context.Background()

	token := contact.NewToken()
	assert.True(t, id.IsULID(token))

	release, err := g.Acquire(ctx, token)
	require.NoError(t, err)

	_, err = g.Acquire(ctx, token)
	require.ErrorIs(t, err, contact.ErrSubmissionInProgress)

	otherRelease, err := g.Acquire(ctx, contact.NewToken())
	require.NoError(t, err, "different forms never block each other")
	require.NoError(t, otherRelease())

	require.NoError(t, release())
	require.NoError(t, release())

	again, err := g.Acquire(ctx, token)
	require.NoError(t, err)
	require.NoError(t, again())
}

func TestGuard_InvalidToken(t *testing.T) {
	t.Parallel()

	claims := cache.NewMemory[string](cache.WithCleanupInterval(0))
	t.Cleanup(func() { _ = claims.Close() })
	g := contact.NewGuard(claims, 0)

	for _, token := range []string{"", "abc", "01ARZ3NDEKTSV4RRFFQ69G5FA!"} {
		_, err := g.Acquire(context.Background(), token)
		require.ErrorIs(t, err, contact.ErrInvalidToken, token)
	}
}

type brokenCache struct {
	cache.Cache[string]
}

func (brokenCache) Add(context.Context, string, string, time.Duration) (bool, error) {
	return false, errors.New("redis: connection refused")
}

func TestController_GuardStoreDown(t *testing.T) {
	t.Parallel()

	m := &mockMailer{}
	m.On("SendRaw", mock.Anything, mock.Anything).Return(nil).Once()

	ctrl := contact.NewController(m, contact.Config{}, contact.WithGuard(contact.NewGuard(brokenCache{}, 0)))
	assert.Equal(t, contact.Delivered, ctrl.Submit(context.Background(), validRequest(), nil).State)
}

type stuckCache struct {
	cache.Cache[string]
}

func (s stuckCache) Delete(context.Context, string) error {
	return errors.New("redis: i/o timeout")
}

func TestGuard_ReleaseError(t *testing.T) {
	t.Parallel()

	claims := cache.NewMemory[string](cache.WithCleanupInterval(0))
	t.Cleanup(func() { _ = claims.Close() })
	g := contact.NewGuard(stuckCache{claims}, time.Minute)

	token := contact.NewToken()
	release, err := g.Acquire(context.Background(), token)
	require.NoError(t, err)

	err = release()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "i/o timeout")

	_, err = g.Acquire(context.Background(), token)
	require.ErrorIs(t, err, contact.ErrSubmissionInProgress, "claim held until its TTL")
}

func TestController_ReleaseErrorLogged(t *testing.T) {
	t.Parallel()

	claims := cache.NewMemory[string](cache.WithCleanupInterval(0))
	t.Cleanup(func() { _ = claims.Close() })

	m := &mockMailer{}
	m.On("SendRaw", mock.Anything, mock.Anything).Return(nil).Once()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	ctrl := contact.NewController(m, contact.Config{},
		contact.WithLogger(log),
		contact.WithGuard(contact.NewGuard(stuckCache{claims}, 0)),
	)

	assert.Equal(t, contact.Delivered, ctrl.Submit(context.Background(), validRequest(), nil).State)
	assert.Contains(t, buf.String(), "submission claim not released")
}
