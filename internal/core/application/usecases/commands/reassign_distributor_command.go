package commands

import (
	"errors"
	"fmt"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/order"
	"medshop/internal/pkg/errs"
	"medshop/internal/pkg/guard"
)

var ErrReassignDistributorCommandIsNotConstructed = errors.New(
	"ReassignDistributorCommand must be created via NewReassignDistributorCommand constructor",
)

// ReassignDistributorCommand hands an order to another distributor. Only
// staff roles (admin, customer_care) may issue it.
type ReassignDistributorCommand struct { //nolint:recvcheck //using for validation
	ref           order.Ref
	distributorID kernel.UUID
	actor         kernel.Role

	guard guard.ConstructorGuard
}

func NewReassignDistributorCommand(orderRef, distributorID, actorRole string) (ReassignDistributorCommand, error) {
	cmd := ReassignDistributorCommand{guard: guard.NewConstructorGuard()}

	var refErr, idErr, roleErr error
	cmd.ref, refErr = order.ParseRef(orderRef)
	cmd.distributorID, idErr = kernel.UUIDFromString(distributorID)
	cmd.actor, roleErr = kernel.ParseRole(actorRole)
	if roleErr == nil && !cmd.actor.IsStaff() {
		roleErr = errs.NewValueIsInvalidErrorWithCause("actor role", fmt.Errorf("%s may not reassign distributors", cmd.actor))
	}
	if err := errors.Join(refErr, idErr, roleErr); err != nil {
		return ReassignDistributorCommand{}, err
	}
	return cmd, nil
}

func (c ReassignDistributorCommand) Validate() error {
	return c.guard.Validate(ErrReassignDistributorCommandIsNotConstructed)
}

func (c ReassignDistributorCommand) Ref() order.Ref             { return c.ref }
func (c ReassignDistributorCommand) DistributorID() kernel.UUID { return c.distributorID }
func (c ReassignDistributorCommand) Actor() kernel.Role         { return c.actor }
