package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	ErrNoItems = errs.NewValueIsRequiredErrorWithCause("items", errors.New("an order needs at least one line item"))
)

// Charges are the amounts added on top of the item subtotal.
type Charges struct {
	DeliveryFee decimal.Decimal
	Tax         decimal.Decimal
}

// DistributorRef identifies the partner responsible for fulfilling an order.
type DistributorRef struct {
	id   kernel.UUID
	name string
}

// NewDistributorRef validates the partner id and requires a display name.
func NewDistributorRef(id kernel.UUID, name string) (DistributorRef, error) {
	if err := id.Validate(); err != nil {
		return DistributorRef{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return DistributorRef{}, errs.NewValueIsRequiredError("distributor name")
	}
	return DistributorRef{id: id, name: name}, nil
}

func (d DistributorRef) ID() kernel.UUID { return d.id }
func (d DistributorRef) Name() string    { return d.name }

// Order is the aggregate root of a retail order.
//
// Invariants:
//   - at least one line item; subtotal is Σ unit price × quantity
//   - total is subtotal + delivery fee + tax; every amount is in whole
//     cents and at most kernel.MaxAmount
//   - status moves forward one step at a time or to cancelled, unless
//     changed by a privileged actor
//   - escalation level never decreases
//   - version increases by one on every persisted mutation
type Order struct {
	id             kernel.UUID
	number         Number
	customer       Customer
	items          []LineItem
	deliveryOption DeliveryOption
	subtotal       decimal.Decimal
	deliveryFee    decimal.Decimal
	tax            decimal.Decimal
	total          decimal.Decimal
	status         Status

	escalationLevel int
	escalationDate  *time.Time

	distributor *DistributorRef

	createdAt      time.Time
	updatedAt      time.Time
	acknowledgedAt *time.Time
	deliveredAt    *time.Time

	version int

	isConstructed bool
}

// NewOrder validates the intake data, computes totals and returns a Pending
// order at version 1 with no distributor.
//
//	items := []order.LineItem{gloves, syringes}
//	o, err := order.NewOrder(kernel.NewUUID(), number, customer, items, order.Dispatch,
//	    order.Charges{DeliveryFee: decimal.NewFromInt(20)}, clock.Now())
func NewOrder(
	id kernel.UUID,
	number Number,
	customer Customer,
	items []LineItem,
	option DeliveryOption,
	charges Charges,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     createdAt,
		updatedAt:     createdAt,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setDelivery(customer, option),
		o.setItems(items),
		o.setCharges(charges),
	); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("created at")
	}

	o.computeTotals()
	if err := errors.Join(
		kernel.ValidateAmount("subtotal", o.subtotal),
		kernel.ValidateAmount("total amount", o.total),
	); err != nil {
		return nil, err
	}
	return o, nil
}

// Snapshot carries the persisted state of an order for RestoreOrder.
type Snapshot struct {
	ID              kernel.UUID
	Number          Number
	Customer        Customer
	Items           []LineItem
	DeliveryOption  DeliveryOption
	DeliveryFee     decimal.Decimal
	Tax             decimal.Decimal
	Status          Status
	EscalationLevel int
	EscalationDate  *time.Time
	Distributor     *DistributorRef
	CreatedAt       time.Time
	UpdatedAt       time.Time
	AcknowledgedAt  *time.Time
	DeliveredAt     *time.Time
	Version         int
}

// RestoreOrder rebuilds an order loaded from storage. Totals are recomputed
// from the items so a restored order always satisfies the total invariant.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		status:          s.Status,
		escalationLevel: s.EscalationLevel,
		escalationDate:  s.EscalationDate,
		distributor:     s.Distributor,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
		acknowledgedAt:  s.AcknowledgedAt,
		deliveredAt:     s.DeliveredAt,
		version:         s.Version,
		isConstructed:   true,
	}

	var errList []error
	errList = append(errList,
		o.setID(s.ID),
		o.setNumber(s.Number),
		o.setItems(s.Items),
		o.setCharges(Charges{DeliveryFee: s.DeliveryFee, Tax: s.Tax}),
		s.Status.Validate(),
		s.DeliveryOption.Validate(),
	)
	if s.EscalationLevel < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("escalation level", s.EscalationLevel, 0, "unbounded"))
	}
	if s.Version < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("version", s.Version, 1, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	o.customer = s.Customer
	o.deliveryOption = s.DeliveryOption
	o.computeTotals()
	return o, nil
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID                { return o.id }
func (o *Order) Number() Number                 { return o.number }
func (o *Order) Customer() Customer             { return o.customer }
func (o *Order) DeliveryOption() DeliveryOption { return o.deliveryOption }
func (o *Order) Subtotal() decimal.Decimal      { return o.subtotal }
func (o *Order) DeliveryFee() decimal.Decimal   { return o.deliveryFee }
func (o *Order) Tax() decimal.Decimal           { return o.tax }
func (o *Order) Total() decimal.Decimal         { return o.total }
func (o *Order) Status() Status                 { return o.status }
func (o *Order) EscalationLevel() int           { return o.escalationLevel }
func (o *Order) EscalationDate() *time.Time     { return o.escalationDate }
func (o *Order) CreatedAt() time.Time           { return o.createdAt }
func (o *Order) UpdatedAt() time.Time           { return o.updatedAt }
func (o *Order) AcknowledgedAt() *time.Time     { return o.acknowledgedAt }
func (o *Order) DeliveredAt() *time.Time        { return o.deliveredAt }
func (o *Order) Version() int                   { return o.version }

// Items returns a copy of the line items in their original order.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// Distributor returns the assigned distributor, or nil when unassigned.
func (o *Order) Distributor() *DistributorRef {
	return o.distributor
}

// IsAssigned reports whether a distributor is attached.
func (o *Order) IsAssigned() bool {
	return o.distributor != nil
}

// ChangeStatus moves the order to target on behalf of actor.
//
// Returns changed=false with no error when target equals the current status.
// Non-privileged actors are limited to the canonical next step and to
// cancellation; privileged actors may set any valid status. Accepted
// transitions refresh updatedAt; the first acknowledgement stamps
// acknowledgedAt and delivery stamps deliveredAt.
func (o *Order) ChangeStatus(target Status, actor kernel.Role, at time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}

	next, err := o.status.TransitionTo(target, actor.IsPrivileged())
	if err != nil {
		return false, err
	}
	if next == o.status {
		return false, nil
	}

	o.status = next
	o.updatedAt = at
	switch next {
	case Acknowledged:
		if o.acknowledgedAt == nil {
			o.acknowledgedAt = &at
		}
	case Delivered:
		o.deliveredAt = &at
	}
	return true, nil
}

// Escalate raises the escalation level by one. Only pending orders escalate;
// the level of an order that moved on is frozen.
func (o *Order) Escalate(at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.status != Pending {
		return errs.NewConflictErrorWithCause("order escalation", fmt.Errorf("%s orders are not escalated", o.status))
	}

	o.escalationLevel++
	o.escalationDate = &at
	o.updatedAt = at
	return nil
}

// AssignDistributor attaches or replaces the responsible distributor.
// Finished orders cannot be reassigned.
func (o *Order) AssignDistributor(d DistributorRef, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := d.id.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewConflictErrorWithCause("order distributor", fmt.Errorf("%s orders cannot be reassigned", o.status))
	}

	o.distributor = &d
	o.updatedAt = at
	return nil
}

// MarkPersisted advances the optimistic-lock version after a successful write.
func (o *Order) MarkPersisted() {
	o.version++
}

func (o *Order) computeTotals() {
	o.subtotal = SubtotalOf(o.items)
	o.total = o.subtotal.Add(o.deliveryFee).Add(o.tax)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number Number) error {
	parsed, err := ParseNumber(string(number))
	if err != nil {
		return err
	}
	o.number = parsed
	return nil
}

func (o *Order) setDelivery(customer Customer, option DeliveryOption) error {
	if customer.name == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	if err := customer.ValidateFor(option); err != nil {
		return err
	}
	o.customer = customer
	o.deliveryOption = option
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	for i, item := range items {
		if item.sku == "" || item.quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("item %d was not created via NewLineItem", i))
		}
	}
	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setCharges(charges Charges) error {
	if err := errors.Join(
		kernel.ValidateAmount("delivery fee", charges.DeliveryFee),
		kernel.ValidateAmount("tax", charges.Tax),
	); err != nil {
		return err
	}
	o.deliveryFee = charges.DeliveryFee
	o.tax = charges.Tax
	return nil
}
