package order

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/pkg/errs"
)

// Customer is the buyer identity and delivery address captured on an order.
type Customer struct {
	name    string
	email   string
	phone   string
	address string
	state   string
}

// NewCustomer requires a name and checks the email format when one is given.
// Channel specific requirements are checked by ValidateFor.
func NewCustomer(name, email, phone, address, state string) (Customer, error) {
	c := Customer{
		name:    strings.TrimSpace(name),
		email:   strings.TrimSpace(email),
		phone:   strings.TrimSpace(phone),
		address: strings.TrimSpace(address),
		state:   strings.TrimSpace(state),
	}

	var errList []error
	if c.name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("customer name"))
	}
	if c.email != "" {
		if _, err := mail.ParseAddress(c.email); err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("customer email", err))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return Customer{}, err
	}

	return c, nil
}

// ValidateFor checks the fields the delivery channel needs: shipped orders
// need phone, address and state; pickups need a phone or an email.
func (c Customer) ValidateFor(option DeliveryOption) error {
	if err := option.Validate(); err != nil {
		return err
	}

	var errList []error
	if option.ShipsToAddress() {
		if c.phone == "" {
			errList = append(errList, errs.NewValueIsRequiredErrorWithCause("customer phone", fmt.Errorf("required for %s", option)))
		}
		if c.address == "" {
			errList = append(errList, errs.NewValueIsRequiredErrorWithCause("customer address", fmt.Errorf("required for %s", option)))
		}
		if kernel.NormalizeRegion(c.state) == "" {
			errList = append(errList, errs.NewValueIsRequiredErrorWithCause("customer state", fmt.Errorf("required for %s", option)))
		}
	} else if c.phone == "" && c.email == "" {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("customer phone or email", fmt.Errorf("required for %s", option)))
	}

	return errors.Join(errList...)
}

func (c Customer) Name() string    { return c.name }
func (c Customer) Email() string   { return c.email }
func (c Customer) Phone() string   { return c.phone }
func (c Customer) Address() string { return c.address }
func (c Customer) State() string   { return c.state }

// Region returns the normalized delivery state, or false when none was given.
func (c Customer) Region() (kernel.Region, bool) {
	r, err := kernel.NewRegion(c.state)
	if err != nil {
		return "", false
	}
	return r, true
}
