package contact

import "context"

// State is the position of one submit attempt.
type State uint8

const (
	Idle State = iota
	Validating
	Invalid
	Submitting
	Delivered
	DeliveryFailed
	// Rejected means another attempt with the same token was still running.
	Rejected
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Invalid:
		return "invalid"
	case Submitting:
		return "submitting"
	case Delivered:
		return "delivered"
	case DeliveryFailed:
		return "delivery_failed"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Terminal reports whether s ends an attempt.
func (s State) Terminal() bool {
	switch s {
	case Invalid, Delivered, DeliveryFailed, Rejected:
		return true
	}
	return false
}

// TransitionFunc observes state changes. It runs synchronously on the
// submitting goroutine and must not block.
type TransitionFunc func(ctx context.Context, from, to State)

// Outcome is what Submit reports back to the page.
type Outcome struct {
	// Err is the delivery error for DeliveryFailed and ErrSubmissionInProgress for Rejected.
	Err error
	// Validation is populated for Invalid.
	Validation ValidationResult
	State      State
}

// Reason describes why the attempt did not deliver, or "".
func (o Outcome) Reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}
