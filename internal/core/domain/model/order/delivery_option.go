package order

import (
	"fmt"
	"strings"

	"medshop/internal/pkg/errs"
)

// DeliveryOption is how the customer receives the goods.
type DeliveryOption string

const (
	Pickup   DeliveryOption = "pickup"
	Dispatch DeliveryOption = "dispatch"
	Courier  DeliveryOption = "courier"
)

// ParseDeliveryOption accepts the lower-case option names.
func ParseDeliveryOption(s string) (DeliveryOption, error) {
	opt := DeliveryOption(strings.ToLower(strings.TrimSpace(s)))
	if err := opt.Validate(); err != nil {
		return "", err
	}
	return opt, nil
}

func (d DeliveryOption) Validate() error {
	switch d {
	case Pickup, Dispatch, Courier:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("delivery option", fmt.Errorf("%q is not one of pickup, dispatch, courier", string(d)))
	}
}

// ShipsToAddress reports whether goods leave the warehouse for the customer's address.
func (d DeliveryOption) ShipsToAddress() bool {
	return d == Dispatch || d == Courier
}

func (d DeliveryOption) String() string {
	return string(d)
}
