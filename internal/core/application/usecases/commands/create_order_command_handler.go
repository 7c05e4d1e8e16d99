package commands

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/order"
	"medshop/internal/core/domain/model/partner"
	"medshop/internal/core/domain/services"
	"medshop/internal/core/ports"
	"medshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// CreateOrderResult is what intake reports back to the storefront.
type CreateOrderResult struct {
	ID          kernel.UUID
	Number      order.Number
	Status      order.Status
	Total       decimal.Decimal
	Distributor *order.DistributorRef
}

// CreateOrderCommandHandler writes a new pending order and routes it to a
// distributor in the same transaction.
//
// When no distributor can be resolved the order is still created, left
// unassigned, and customer care receives an order.unassigned event.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, resolver, order.NewNumberGenerator(), fees, kernel.SystemClock{}, logger)
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	resolver   services.DistributorResolver
	numbers    *order.NumberGenerator
	fees       order.FeeSchedule
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	resolver services.DistributorResolver,
	numbers *order.NumberGenerator,
	fees order.FeeSchedule,
	clock kernel.Clock,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		numbers:    numbers,
		fees:       fees,
		clock:      clock,
		logger:     logger.With("component", "create-order"),
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	now := h.clock.Now()
	number, err := h.numbers.Next(now)
	if err != nil {
		return CreateOrderResult{}, err
	}

	items := cmd.Items()
	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		number,
		cmd.Customer(),
		items,
		cmd.DeliveryOption(),
		h.fees.Charges(cmd.DeliveryOption(), order.SubtotalOf(items)),
		now,
	)
	if err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	distributor, err := h.resolveDistributor(ctx, uow.PartnerRepository(), aggregate)
	unassigned := errors.Is(err, errs.ErrConfiguration)
	switch {
	case unassigned:
		h.logger.Error("order left unassigned", "order_number", number.String(), "error", err)
	case err != nil:
		return CreateOrderResult{}, err
	default:
		ref, refErr := order.NewDistributorRef(distributor.ID(), distributor.Name())
		if refErr != nil {
			return CreateOrderResult{}, refErr
		}
		if err = aggregate.AssignDistributor(ref, now); err != nil {
			return CreateOrderResult{}, err
		}
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return CreateOrderResult{}, err
	}

	if unassigned {
		event := careEventFor(ports.CareEventUnassigned, aggregate, now)
		event.Detail = "no distributor serves " + aggregate.Customer().State()
		if err = uow.CareNotifier().Notify(ctx, event); err != nil {
			return CreateOrderResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	return CreateOrderResult{
		ID:          aggregate.ID(),
		Number:      aggregate.Number(),
		Status:      aggregate.Status(),
		Total:       aggregate.Total(),
		Distributor: aggregate.Distributor(),
	}, nil
}

func (h CreateOrderCommandHandler) resolveDistributor(
	ctx context.Context,
	repo ports.PartnerRepository,
	aggregate *order.Order,
) (*partner.Partner, error) {
	region, _ := aggregate.Customer().Region()

	var candidates []*partner.Partner
	if region != "" {
		var err error
		if candidates, err = repo.ListApprovedDistributors(ctx, region); err != nil {
			return nil, err
		}
	}

	var fallback *partner.Partner
	served := slices.ContainsFunc(candidates, func(p *partner.Partner) bool {
		return p.IsApprovedDistributor() && p.Serves(region)
	})
	if !served && h.resolver.DefaultEmail() != "" {
		found, err := repo.FindByEmail(ctx, h.resolver.DefaultEmail())
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
		case err != nil:
			return nil, err
		default:
			fallback = found
		}
	}

	return h.resolver.Resolve(region, candidates, fallback)
}

func careEventFor(kind ports.CareEventKind, o *order.Order, at time.Time) ports.CareEvent {
	event := ports.CareEvent{
		Kind:            kind,
		OrderID:         o.ID().String(),
		OrderNumber:     o.Number().String(),
		Status:          o.Status().String(),
		EscalationLevel: o.EscalationLevel(),
		At:              at,
	}
	if d := o.Distributor(); d != nil {
		event.DistributorID = d.ID().String()
	}
	return event
}
