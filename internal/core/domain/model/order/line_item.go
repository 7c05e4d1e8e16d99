package order

import (
	"errors"
	"fmt"
	"strings"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// LineItem is one product row of an order. It is immutable.
type LineItem struct {
	sku       string
	name      string
	quantity  int
	unitPrice decimal.Decimal
}

// NewLineItem validates that the sku is present, quantity is positive and
// the unit price is a positive amount in cents.
func NewLineItem(sku, name string, quantity int, unitPrice decimal.Decimal) (LineItem, error) {
	item := LineItem{
		sku:       strings.TrimSpace(sku),
		name:      strings.TrimSpace(name),
		quantity:  quantity,
		unitPrice: unitPrice,
	}

	var errList []error
	if item.sku == "" {
		errList = append(errList, errs.NewValueIsRequiredError("item sku"))
	}
	if quantity <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeErrorWithCause(
			"item quantity", quantity, 1, "unbounded", fmt.Errorf("sku %q", item.sku)))
	}
	if !unitPrice.IsPositive() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"item unit price", fmt.Errorf("%s is not positive for sku %q", unitPrice, item.sku)))
	} else if err := kernel.ValidateAmount("item unit price", unitPrice); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

func (i LineItem) SKU() string                { return i.sku }
func (i LineItem) Name() string               { return i.name }
func (i LineItem) Quantity() int              { return i.quantity }
func (i LineItem) UnitPrice() decimal.Decimal { return i.unitPrice }

// Total is unit price × quantity.
func (i LineItem) Total() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}
