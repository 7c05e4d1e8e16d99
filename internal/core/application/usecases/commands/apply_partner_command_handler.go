package commands

import (
	"context"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/partner"
)

// ApplyPartnerCommandHandler stores a pending partner application.
type ApplyPartnerCommandHandler struct {
	uowFactory PartnerUoWFactory
	clock      kernel.Clock
}

func NewApplyPartnerCommandHandler(uowFactory PartnerUoWFactory, clock kernel.Clock) ApplyPartnerCommandHandler {
	return ApplyPartnerCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h ApplyPartnerCommandHandler) Handle(ctx context.Context, cmd ApplyPartnerCommand) (*partner.Partner, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := partner.NewPartner(kernel.NewUUID(), cmd.Email(), cmd.Name(), cmd.Type(), cmd.Discount(), cmd.Regions(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PartnerRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return aggregate, nil
}
