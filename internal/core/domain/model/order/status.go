package order

import (
	"fmt"
	"strings"

	"medshop/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Pending ──> Acknowledged ──> PaymentConfirmed ──> Processing ──> Dispatched ──> Delivered
//	   │             │                  │                  │              │
//	   └─────────────┴──────────────────┴──────────────────┴──────────────┴──> Cancelled
//
// Non-privileged actors move one step forward or cancel. Privileged actors
// may set any valid status.
type Status int

const (
	// Unknown (0) catches uninitialized values.
	Unknown Status = iota
	Pending
	Acknowledged
	PaymentConfirmed
	Processing
	Dispatched
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Pending:          "pending",
	Acknowledged:     "acknowledged",
	PaymentConfirmed: "payment_confirmed",
	Processing:       "processing",
	Dispatched:       "dispatched",
	Delivered:        "delivered",
	Cancelled:        "cancelled",
}

var canonicalNext = map[Status]Status{
	Pending:          Acknowledged,
	Acknowledged:     PaymentConfirmed,
	PaymentConfirmed: Processing,
	Processing:       Dispatched,
	Dispatched:       Delivered,
}

// ParseStatus maps the wire name ("payment_confirmed") to a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Acknowledged, PaymentConfirmed, Processing, Dispatched, Delivered, Cancelled}
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, or "unknown" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no further normal transitions exist.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Next returns the canonical successor, if any.
func (s Status) Next() (Status, bool) {
	next, ok := canonicalNext[s]
	return next, ok
}

// IsRegularTransition reports whether moving from s to target is allowed
// without an override: the canonical next step, or cancellation of an
// order that is not yet delivered or cancelled.
func (s Status) IsRegularTransition(target Status) bool {
	if next, ok := s.Next(); ok && next == target {
		return true
	}
	return target == Cancelled && !s.IsTerminal()
}

// TransitionTo validates the move from s to target and returns target.
// Re-applying the current status is accepted and returns s unchanged.
func (s Status) TransitionTo(target Status, privileged bool) (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if s == target || privileged || s.IsRegularTransition(target) {
		return target, nil
	}

	return Unknown, errs.NewConflictErrorWithCause(
		"order status",
		fmt.Errorf("%s -> %s is not an allowed transition", s, target),
	)
}
