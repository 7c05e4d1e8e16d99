package commands

import (
	"context"
	"fmt"
	"log/slog"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/order"
	"medshop/internal/core/ports"
)

// ChangeOrderStatusResult carries the order after the command and whether
// anything was written.
type ChangeOrderStatusResult struct {
	Order    *order.Order
	Changed  bool
	Override bool
}

// ChangeOrderStatusCommandHandler applies status transitions.
//
// Re-applying the current status returns the order untouched without a
// write. Admin transitions outside the canonical path are logged at WARN
// and reported to customer care as order.override.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock, logger *slog.Logger) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.With("component", "order-status"),
	}
}

func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (ChangeOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := loadOrder(ctx, orderRepo, cmd.Ref())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	previous := aggregate.Status()
	now := h.clock.Now()
	changed, err := aggregate.ChangeStatus(cmd.Target(), cmd.Actor(), now)
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}
	if !changed {
		return ChangeOrderStatusResult{Order: aggregate}, nil
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	override := !previous.IsRegularTransition(cmd.Target())
	if override {
		h.logger.WarnContext(ctx, "status override",
			"order_number", aggregate.Number().String(),
			"from", previous.String(),
			"to", cmd.Target().String(),
			"actor", cmd.Actor().String(),
		)
		event := careEventFor(ports.CareEventOverride, aggregate, now)
		event.Actor = cmd.Actor().String()
		event.Detail = fmt.Sprintf("%s -> %s", previous, cmd.Target())
		if err = uow.CareNotifier().Notify(ctx, event); err != nil {
			return ChangeOrderStatusResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	return ChangeOrderStatusResult{Order: aggregate, Changed: true, Override: override}, nil
}

func loadOrder(ctx context.Context, repo ports.OrderRepository, ref order.Ref) (*order.Order, error) {
	if ref.IsID() {
		return repo.Get(ctx, ref.ID)
	}
	return repo.GetByNumber(ctx, ref.Number)
}
