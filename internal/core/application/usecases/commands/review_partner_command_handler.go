package commands

import (
	"context"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/partner"
)

type ReviewPartnerCommandHandler struct {
	uowFactory PartnerUoWFactory
	clock      kernel.Clock
}

func NewReviewPartnerCommandHandler(uowFactory PartnerUoWFactory, clock kernel.Clock) ReviewPartnerCommandHandler {
	return ReviewPartnerCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h ReviewPartnerCommandHandler) Handle(ctx context.Context, cmd ReviewPartnerCommand) (*partner.Partner, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PartnerRepository()
	aggregate, err := repo.Get(ctx, cmd.PartnerID())
	if err != nil {
		return nil, err
	}

	changed, err := aggregate.Review(cmd.Status(), cmd.Actor(), h.clock.Now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return aggregate, nil
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return aggregate, nil
}
