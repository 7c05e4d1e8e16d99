package order

import (
	"fmt"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// FeeSchedule prices delivery per option and taxes the item subtotal.
type FeeSchedule struct {
	fees    map[DeliveryOption]decimal.Decimal
	taxRate decimal.Decimal
}

// NewFeeSchedule rejects fees that are not valid amounts and tax rates
// outside [0, 1].
// Options missing from fees ship free.
func NewFeeSchedule(fees map[DeliveryOption]decimal.Decimal, taxRate decimal.Decimal) (FeeSchedule, error) {
	copied := make(map[DeliveryOption]decimal.Decimal, len(fees))
	for option, fee := range fees {
		if err := option.Validate(); err != nil {
			return FeeSchedule{}, err
		}
		if err := kernel.ValidateAmount(string(option)+" delivery fee", fee); err != nil {
			return FeeSchedule{}, err
		}
		copied[option] = fee
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(1)) {
		return FeeSchedule{}, errs.NewValueIsOutOfRangeError("tax rate", taxRate.String(), 0, 1)
	}
	return FeeSchedule{fees: copied, taxRate: taxRate}, nil
}

// Charges returns the delivery fee for option and the tax on subtotal,
// rounded to cents.
func (s FeeSchedule) Charges(option DeliveryOption, subtotal decimal.Decimal) Charges {
	return Charges{
		DeliveryFee: s.fees[option],
		Tax:         subtotal.Mul(s.taxRate).Round(2),
	}
}

// SubtotalOf sums unit price × quantity over items.
func SubtotalOf(items []LineItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Total())
	}
	return subtotal
}

// Ref addresses an order either by id or by order number.
type Ref struct {
	ID     kernel.UUID
	Number Number
}

// ParseRef accepts a UUID or an order number.
func ParseRef(s string) (Ref, error) {
	if id, err := kernel.UUIDFromString(s); err == nil {
		return Ref{ID: id}, nil
	}
	number, err := ParseNumber(s)
	if err != nil {
		return Ref{}, errs.NewValueIsInvalidErrorWithCause("order reference", fmt.Errorf("%q is neither an order id nor an order number", s))
	}
	return Ref{Number: number}, nil
}

// IsID reports whether the reference carries an id.
func (r Ref) IsID() bool {
	return r.ID.Validate() == nil
}

func (r Ref) String() string {
	if r.IsID() {
		return r.ID.String()
	}
	return r.Number.String()
}
