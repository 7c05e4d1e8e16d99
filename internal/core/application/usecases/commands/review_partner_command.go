package commands

import (
	"errors"
	"fmt"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/partner"
	"medshop/internal/pkg/errs"
	"medshop/internal/pkg/guard"
)

var ErrReviewPartnerCommandIsNotConstructed = errors.New(
	"ReviewPartnerCommand must be created via NewReviewPartnerCommand constructor",
)

// ReviewPartnerCommand approves or rejects an application. Admin only.
type ReviewPartnerCommand struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID
	status    partner.Status
	actor     kernel.Role

	guard guard.ConstructorGuard
}

func NewReviewPartnerCommand(partnerID, status, actorRole string) (ReviewPartnerCommand, error) {
	cmd := ReviewPartnerCommand{guard: guard.NewConstructorGuard()}

	var idErr, statusErr, roleErr error
	cmd.partnerID, idErr = kernel.UUIDFromString(partnerID)
	cmd.status, statusErr = partner.ParseStatus(status)
	cmd.actor, roleErr = kernel.ParseRole(actorRole)
	if roleErr == nil && !cmd.actor.IsPrivileged() {
		roleErr = errs.NewValueIsInvalidErrorWithCause("actor role", fmt.Errorf("%s may not review partners", cmd.actor))
	}
	if err := errors.Join(idErr, statusErr, roleErr); err != nil {
		return ReviewPartnerCommand{}, err
	}
	return cmd, nil
}

func (c ReviewPartnerCommand) Validate() error {
	return c.guard.Validate(ErrReviewPartnerCommandIsNotConstructed)
}

func (c ReviewPartnerCommand) PartnerID() kernel.UUID { return c.partnerID }
func (c ReviewPartnerCommand) Status() partner.Status { return c.status }
func (c ReviewPartnerCommand) Actor() kernel.Role     { return c.actor }
