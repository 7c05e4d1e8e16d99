package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/order"
	"medshop/internal/core/domain/services"
	"medshop/internal/core/ports"
	"medshop/internal/pkg/errs"
)

// EscalateOrdersResult counts what one sweep did.
type EscalateOrdersResult struct {
	Escalated int
	Skipped   int
}

// EscalateOrdersCommandHandler raises every due pending order by one level.
//
// Each order is escalated in its own transaction. An order that changed
// since it was listed (version conflict, or no longer pending) is skipped;
// the next sweep sees its fresh state. Any other error aborts the sweep.
type EscalateOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.EscalationPolicy
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewEscalateOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.EscalationPolicy,
	clock kernel.Clock,
	logger *slog.Logger,
) EscalateOrdersCommandHandler {
	return EscalateOrdersCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
		logger:     logger.With("component", "escalation-sweep"),
	}
}

func (h EscalateOrdersCommandHandler) Handle(ctx context.Context, cmd EscalateOrdersCommand) (EscalateOrdersResult, error) {
	var result EscalateOrdersResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	now := h.clock.Now()
	candidates, err := h.listCandidates(ctx, now)
	if err != nil {
		return result, err
	}

	for _, candidate := range candidates {
		if err = ctx.Err(); err != nil {
			return result, err
		}

		escalated, escalateErr := h.escalate(ctx, candidate, now)
		switch {
		case errors.Is(escalateErr, errs.ErrConflict):
			result.Skipped++
			h.logger.InfoContext(ctx, "order changed during sweep, skipped",
				"order_number", candidate.Number().String(), "error", escalateErr)
		case escalateErr != nil:
			return result, escalateErr
		case escalated:
			result.Escalated++
		}
	}

	if result.Escalated > 0 || result.Skipped > 0 {
		h.logger.InfoContext(ctx, "escalation sweep finished",
			"escalated", result.Escalated, "skipped", result.Skipped, "candidates", len(candidates))
	}
	return result, nil
}

func (h EscalateOrdersCommandHandler) listCandidates(ctx context.Context, now time.Time) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().ListPendingCreatedBefore(ctx, h.policy.OldestEligible(now))
}

func (h EscalateOrdersCommandHandler) escalate(ctx context.Context, aggregate *order.Order, now time.Time) (bool, error) {
	escalated, err := h.policy.Apply(aggregate, now)
	if err != nil || !escalated {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return false, err
	}

	event := careEventFor(ports.CareEventEscalated, aggregate, now)
	if err = uow.CareNotifier().Notify(ctx, event); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	h.logger.WarnContext(ctx, "order escalated",
		"order_number", aggregate.Number().String(),
		"level", aggregate.EscalationLevel(),
	)
	return true, nil
}
