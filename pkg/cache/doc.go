// Package cache provides a generic Cache interface with in-memory and Redis
// implementations.
//
// The contact service uses it for two things: per-client rate limiters
// (process-local, memory only) and submission claims that stop the same form
// from being delivered twice while a send is in flight (memory, or Redis when
// several replicas serve the site).
//
// # TTL semantics
//
//   - Positive duration: item expires after this duration
//   - Zero: use the cache's configured default TTL
//   - Negative: item never expires
//
// # Atomic claims
//
// Add stores a value only if the key is absent and reports whether it did.
// On Redis it maps to SET NX, so two replicas racing for the same key see
// exactly one winner.
//
//	ok, err := c.Add(ctx, token, requestID, 2*time.Minute)
//	if !ok {
//	    // someone else holds the claim
//	}
//
// # Read-through
//
// GetOrSet computes a value on a miss and deduplicates concurrent misses for
// the same key with singleflight.
package cache
