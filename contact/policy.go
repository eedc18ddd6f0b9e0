package contact

import (
	"fmt"
	"strings"
)

// DeliveryPolicy decides what a failed delivery looks like to the visitor.
type DeliveryPolicy uint8

const (
	// ReportActualOutcome shows DeliveryFailed with a retry when the provider call fails.
	ReportActualOutcome DeliveryPolicy = iota
	// AlwaysReportDelivered shows success once validation passes and only logs failures.
	AlwaysReportDelivered
)

func (p DeliveryPolicy) String() string {
	if p == AlwaysReportDelivered {
		return "always"
	}
	return "actual"
}

// UnmarshalText accepts "actual" or "always".
func (p *DeliveryPolicy) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "actual":
		*p = ReportActualOutcome
	case "always":
		*p = AlwaysReportDelivered
	default:
		return fmt.Errorf("contact: unknown delivery policy %q", text)
	}
	return nil
}

func (p DeliveryPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
