package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalcoin/site/pkg/cache"
	"github.com/dalcoin/site/pkg/id"
)

var (
	// ErrSubmissionInProgress is returned when a form token is already claimed.
	ErrSubmissionInProgress = errors.New("contact: submission already in progress")

	// ErrInvalidToken is returned for a token that was not issued by the site.
	ErrInvalidToken = errors.New("contact: invalid submission token")
)

// DefaultClaimTTL bounds how long a crashed attempt can hold a token.
const DefaultClaimTTL = 2 * time.Minute

// Guard serialises attempts that carry the same form token.
// Different tokens never block each other.
type Guard struct {
	claims cache.Cache[string]
	ttl    time.Duration
}

// NewGuard stores claims in c. A non-positive ttl means DefaultClaimTTL.
func NewGuard(c cache.Cache[string], ttl time.Duration) *Guard {
	if ttl <= 0 {
		ttl = DefaultClaimTTL
	}
	return &Guard{claims: c, ttl: ttl}
}

// NewToken issues a token for a freshly rendered form.
func NewToken() string {
	return id.NewULID()
}

// Acquire claims token and returns a func that releases it.
// The release uses its own short context so it runs even after ctx is done.
// A release error leaves the claim in place until its TTL expires.
func (g *Guard) Acquire(ctx context.Context, token string) (func() error, error) {
	if !id.IsULID(token) {
		return nil, ErrInvalidToken
	}

	ok, err := g.claims.Add(ctx, token, time.Now().UTC().Format(time.RFC3339), g.ttl)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSubmissionInProgress
	}

	return func() error {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := g.claims.Delete(ctx, token); err != nil {
			return fmt.Errorf("release claim: %w", err)
		}
		return nil
	}, nil
}
