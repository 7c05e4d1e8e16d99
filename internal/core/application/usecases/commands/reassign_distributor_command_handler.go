package commands

import (
	"context"
	"fmt"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/order"
	"medshop/internal/core/ports"
	"medshop/internal/pkg/errs"
)

// ReassignDistributorCommandHandler moves an order to another approved
// distributor with the same versioned update as status changes.
type ReassignDistributorCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

func NewReassignDistributorCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) ReassignDistributorCommandHandler {
	return ReassignDistributorCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h ReassignDistributorCommandHandler) Handle(ctx context.Context, cmd ReassignDistributorCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := loadOrder(ctx, orderRepo, cmd.Ref())
	if err != nil {
		return nil, err
	}

	distributor, err := uow.PartnerRepository().Get(ctx, cmd.DistributorID())
	if err != nil {
		return nil, err
	}
	if !distributor.IsApprovedDistributor() {
		return nil, errs.NewConflictErrorWithCause("order distributor",
			fmt.Errorf("partner %s is a %s %s", distributor.Email(), distributor.Status(), distributor.Type()))
	}

	if current := aggregate.Distributor(); current != nil && current.ID().IsEqual(distributor.ID()) {
		return aggregate, nil
	}

	ref, err := order.NewDistributorRef(distributor.ID(), distributor.Name())
	if err != nil {
		return nil, err
	}
	now := h.clock.Now()
	if err = aggregate.AssignDistributor(ref, now); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	event := careEventFor(ports.CareEventReassigned, aggregate, now)
	event.Actor = cmd.Actor().String()
	if err = uow.CareNotifier().Notify(ctx, event); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return aggregate, nil
}
