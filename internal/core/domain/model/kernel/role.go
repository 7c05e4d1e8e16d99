package kernel

import (
	"fmt"
	"strings"

	"medshop/internal/pkg/errs"
)

// Role identifies the dashboard an actor works from. Authentication happens
// upstream; the role arrives with the request.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDistributor  Role = "distributor"
	RoleWholesaler   Role = "wholesaler"
	RoleCustomerCare Role = "customer_care"
	RoleMarketer     Role = "marketer"
	RoleSales        Role = "sales"
	RoleCustomer     Role = "customer"
)

var knownRoles = map[Role]struct{}{
	RoleAdmin:        {},
	RoleDistributor:  {},
	RoleWholesaler:   {},
	RoleCustomerCare: {},
	RoleMarketer:     {},
	RoleSales:        {},
	RoleCustomer:     {},
}

// ParseRole accepts the lower-case role names, tolerating surrounding spaces
// and "customer-care" spelled with a hyphen.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if _, ok := knownRoles[r]; !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("actor role", fmt.Errorf("%q is not a known role", s))
	}
	return r, nil
}

// IsPrivileged reports whether the role may override the order lifecycle.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin
}

// IsStaff reports whether the role belongs to back-office staff allowed to
// reassign distributors.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleCustomerCare
}

func (r Role) String() string {
	return string(r)
}
