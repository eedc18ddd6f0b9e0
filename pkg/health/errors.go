package health

import "errors"

var (
	// ErrCheckFailed wraps the error of a failing check in Run.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout is reported for a check still running when the timeout expires.
	ErrCheckTimeout = errors.New("health: check timeout")
)
