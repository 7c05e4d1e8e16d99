package kernel

import (
	"strings"

	"medshop/internal/pkg/errs"
)

// Region is a normalized delivery state used to route orders to distributors.
// "  Lagos State " and "lagos" normalize to the same region.
type Region string

// NewRegion normalizes s and rejects blank input.
func NewRegion(s string) (Region, error) {
	r := NormalizeRegion(s)
	if r == "" {
		return "", errs.NewValueIsRequiredError("region")
	}
	return Region(r), nil
}

// NormalizeRegion lower-cases, collapses whitespace and drops a trailing
// "state" word.
func NormalizeRegion(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) > 1 && fields[len(fields)-1] == "state" {
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}

func (r Region) String() string {
	return string(r)
}
