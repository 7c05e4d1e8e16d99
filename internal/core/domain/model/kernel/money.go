package kernel

import (
	"fmt"

	"medshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places every stored amount keeps.
const MoneyScale = 2

// MaxAmount is the largest amount a money column holds.
var MaxAmount = decimal.New(999_999_999_999, -MoneyScale)

// ValidateAmount accepts amounts in [0, MaxAmount] with at most two decimal
// places. Trailing zeros do not count: 1.500 is a valid amount.
func ValidateAmount(field string, amount decimal.Decimal) error {
	switch {
	case amount.IsNegative():
		return errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("%s is negative", amount))
	case !amount.Equal(amount.Truncate(MoneyScale)):
		return errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("%s has more than %d decimal places", amount, MoneyScale))
	case amount.GreaterThan(MaxAmount):
		return errs.NewValueIsOutOfRangeError(field, amount.String(), "0", MaxAmount.String())
	}
	return nil
}
