package partner

import (
	"fmt"
	"strings"

	"medshop/internal/pkg/errs"
)

// Type is the reseller tier a partner applied for.
type Type string

const (
	Distributor Type = "distributor"
	Wholesaler  Type = "wholesaler"
)

func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t Type) Validate() error {
	if t != Distributor && t != Wholesaler {
		return errs.NewValueIsInvalidErrorWithCause("partner type", fmt.Errorf("%q is not one of distributor, wholesaler", string(t)))
	}
	return nil
}

func (t Type) String() string { return string(t) }

// Status is the review state of a partner application.
type Status string

const (
	Pending  Status = "pending"
	Approved Status = "approved"
	Rejected Status = "rejected"
)

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st, nil
}

func (s Status) Validate() error {
	switch s {
	case Pending, Approved, Rejected:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("partner status", fmt.Errorf("%q is not one of pending, approved, rejected", string(s)))
	}
}

func (s Status) String() string { return string(s) }
