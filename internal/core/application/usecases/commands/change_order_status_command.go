package commands

import (
	"errors"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/order"
	"medshop/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand asks to move an order to a target status on
// behalf of an actor role.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	ref    order.Ref
	target order.Status
	actor  kernel.Role

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(orderRef, status, actorRole string) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{guard: guard.NewConstructorGuard()}

	var refErr, statusErr, roleErr error
	cmd.ref, refErr = order.ParseRef(orderRef)
	cmd.target, statusErr = order.ParseStatus(status)
	cmd.actor, roleErr = kernel.ParseRole(actorRole)
	if err := errors.Join(refErr, statusErr, roleErr); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	return cmd, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) Ref() order.Ref       { return c.ref }
func (c ChangeOrderStatusCommand) Target() order.Status { return c.target }
func (c ChangeOrderStatusCommand) Actor() kernel.Role   { return c.actor }
