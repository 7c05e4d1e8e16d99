package commands

import (
	"errors"
	"fmt"

	"medshop/internal/core/domain/model/order"
	"medshop/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CustomerInput is the buyer data submitted at checkout.
type CustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
	State   string
}

// ItemInput is one submitted cart line.
type ItemInput struct {
	SKU       string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateOrderCommand represents a checkout of the retail storefront.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    CustomerInput{Name: "Ada", Phone: "+234...", Address: "12 Marina", State: "Lagos"},
//	    []ItemInput{{SKU: "GLV-100", Quantity: 2, UnitPrice: decimal.NewFromInt(100)}},
//	    "dispatch",
//	)
//	if err != nil {
//	    return err // validation error list
//	}
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customer order.Customer
	items    []order.LineItem
	option   order.DeliveryOption

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand checks every field and returns all failures joined.
func NewCreateOrderCommand(customer CustomerInput, items []ItemInput, deliveryOption string) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOption(deliveryOption),
		cmd.setCustomer(customer),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Customer() order.Customer             { return c.customer }
func (c CreateOrderCommand) DeliveryOption() order.DeliveryOption { return c.option }

func (c CreateOrderCommand) Items() []order.LineItem {
	items := make([]order.LineItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setOption(option string) error {
	parsed, err := order.ParseDeliveryOption(option)
	if err != nil {
		return err
	}
	c.option = parsed
	return nil
}

func (c *CreateOrderCommand) setCustomer(in CustomerInput) error {
	customer, err := order.NewCustomer(in.Name, in.Email, in.Phone, in.Address, in.State)
	if err != nil {
		return err
	}
	if c.option != "" {
		if err = customer.ValidateFor(c.option); err != nil {
			return err
		}
	}
	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setItems(in []ItemInput) error {
	if len(in) == 0 {
		return order.ErrNoItems
	}

	items := make([]order.LineItem, 0, len(in))
	var errList []error
	for i, raw := range in {
		item, err := order.NewLineItem(raw.SKU, raw.Name, raw.Quantity, raw.UnitPrice)
		if err != nil {
			errList = append(errList, fmt.Errorf("items[%d]: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	c.items = items
	return nil
}
