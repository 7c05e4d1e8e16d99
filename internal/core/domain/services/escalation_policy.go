package services

import (
	"time"

	"medshop/internal/core/domain/model/order"
	"medshop/internal/pkg/errs"
)

const DefaultEscalationWindow = time.Hour

// EscalationPolicy raises pending orders that sat unacknowledged for a
// whole window per level. An order at level n is due once
// created_at + window*(n+1) has passed, so one sweep escalates it by one
// and repeated sweeps inside the same window leave it alone.
type EscalationPolicy struct {
	window time.Duration
}

func NewEscalationPolicy(window time.Duration) (EscalationPolicy, error) {
	if window <= 0 {
		return EscalationPolicy{}, errs.NewValueIsOutOfRangeError("escalation window", window, "1ns", "unbounded")
	}
	return EscalationPolicy{window: window}, nil
}

func (p EscalationPolicy) Window() time.Duration {
	return p.window
}

// OldestEligible is the newest created_at an order may have to be due at
// now. Stores use it to narrow the candidate set before IsDue.
func (p EscalationPolicy) OldestEligible(now time.Time) time.Time {
	return now.Add(-p.window)
}

// IsDue reports whether o should move up one level at now.
func (p EscalationPolicy) IsDue(o *order.Order, now time.Time) bool {
	if o.Status() != order.Pending {
		return false
	}
	deadline := o.CreatedAt().Add(p.window * time.Duration(o.EscalationLevel()+1))
	return !now.Before(deadline)
}

// Apply escalates o when due and reports whether it did.
func (p EscalationPolicy) Apply(o *order.Order, now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if !p.IsDue(o, now) {
		return false, nil
	}
	if err := o.Escalate(now); err != nil {
		return false, err
	}
	return true, nil
}
