package cache

import "errors"

var (
	// ErrNotFound means the key is absent or its TTL has passed.
	ErrNotFound = errors.New("cache: miss")

	// ErrClosed is returned by writes after Close.
	ErrClosed = errors.New("cache: use of closed cache")

	ErrMarshal   = errors.New("cache: encode value")
	ErrUnmarshal = errors.New("cache: decode value")
)
