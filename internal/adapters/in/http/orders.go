package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"medshop/internal/api"
	"medshop/internal/core/application/usecases/commands"
	"medshop/internal/core/application/usecases/queries"
	"medshop/internal/core/domain/model/order"
	"medshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func bindBody(ctx echo.Context, dst any) error {
	if err := ctx.Bind(dst); err != nil {
		return &badRequestError{message: "Invalid request body", cause: err}
	}
	return ctx.Validate(dst)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body api.NewOrder
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	items := make([]commands.ItemInput, len(body.Items))
	for i, item := range body.Items {
		items[i] = commands.ItemInput{
			SKU:       item.Sku,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	cmd, err := commands.NewCreateOrderCommand(commands.CustomerInput{
		Name:    body.Customer.Name,
		Email:   body.Customer.Email,
		Phone:   body.Customer.Phone,
		Address: body.Customer.Address,
		State:   body.Customer.State,
	}, items, body.DeliveryOption)
	if err != nil {
		return err
	}

	result, err := call(ctx.Request().Context(), s.retry, func(c context.Context) (commands.CreateOrderResult, error) {
		return s.h.CreateOrder.Handle(c, cmd)
	})
	if err != nil {
		return err
	}
	s.metrics.OrdersCreated.WithLabelValues(strconv.FormatBool(result.Distributor != nil)).Inc()

	response := api.OrderCreated{
		Id:          result.ID.Bytes(),
		OrderNumber: result.Number.String(),
		Status:      result.Status.String(),
		TotalAmount: result.Total,
	}
	if result.Distributor != nil {
		id := result.Distributor.ID().Bytes()
		response.DistributorId = &id
	}
	return ctx.JSON(http.StatusCreated, response)
}

// GetOrder handles GET /api/v1/orders/{orderRef}.
func (s *Server) GetOrder(ctx echo.Context, orderRef string) error {
	query, err := queries.NewGetOrderQuery(orderRef)
	if err != nil {
		return err
	}

	view, err := call(ctx.Request().Context(), s.retry, func(c context.Context) (queries.OrderView, error) {
		return s.h.GetOrder.Handle(c, query)
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, orderFromView(view))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params api.ListOrdersParams) error {
	filter := queries.OrderFilter{From: params.From, To: params.To}
	if params.DistributorId != nil {
		filter.DistributorID = params.DistributorId.String()
	}
	if params.Status != nil {
		filter.Status = *params.Status
	}
	query, err := queries.NewListOrdersQuery(filter)
	if err != nil {
		return err
	}

	views, err := call(ctx.Request().Context(), s.retry, func(c context.Context) ([]queries.OrderView, error) {
		return s.h.ListOrders.Handle(c, query)
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ordersFromViews(views))
}

// UpdateOrderStatus handles PATCH /api/v1/orders/{orderRef}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, orderRef string) error {
	var body api.StatusChange
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	cmd, err := commands.NewChangeOrderStatusCommand(orderRef, body.Status, body.ActorRole)
	if err != nil {
		return err
	}

	result, err := call(ctx.Request().Context(), s.retry, func(c context.Context) (commands.ChangeOrderStatusResult, error) {
		return s.h.ChangeOrderStatus.Handle(c, cmd)
	})
	if err != nil {
		return err
	}
	if result.Changed {
		s.metrics.StatusTransitions.
			WithLabelValues(result.Order.Status().String(), strconv.FormatBool(result.Override)).
			Inc()
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(result.Order))
}

// ReassignDistributor handles PUT /api/v1/orders/{orderRef}/distributor.
func (s *Server) ReassignDistributor(ctx echo.Context, orderRef string) error {
	var body api.DistributorChange
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	cmd, err := commands.NewReassignDistributorCommand(orderRef, body.DistributorId.String(), body.ActorRole)
	if err != nil {
		return err
	}

	aggregate, err := call(ctx.Request().Context(), s.retry, func(c context.Context) (*order.Order, error) {
		return s.h.ReassignDistributor.Handle(c, cmd)
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(aggregate))
}

// ListEscalations handles GET /api/v1/escalations, the customer-care queue.
func (s *Server) ListEscalations(ctx echo.Context) error {
	query := queries.NewListEscalatedOrdersQuery()

	views, err := call(ctx.Request().Context(), s.retry, func(c context.Context) ([]queries.OrderView, error) {
		return s.h.ListEscalatedOrders.Handle(c, query)
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ordersFromViews(views))
}

// SweepEscalations handles POST /api/v1/escalations/sweep. It runs the same
// sweep as the scheduled job.
func (s *Server) SweepEscalations(ctx echo.Context) error {
	result, err := call(ctx.Request().Context(), s.retry, func(c context.Context) (commands.EscalateOrdersResult, error) {
		return s.h.EscalateOrders.Handle(c, commands.NewEscalateOrdersCommand())
	})
	s.metrics.Escalations.Add(float64(result.Escalated))
	if err != nil {
		s.metrics.EscalationSweeps.WithLabelValues("http", sweepOutcome(err)).Inc()
		return err
	}
	s.metrics.EscalationSweeps.WithLabelValues("http", "ok").Inc()

	return ctx.JSON(http.StatusOK, api.SweepResult{
		Escalated: result.Escalated,
		Skipped:   result.Skipped,
	})
}

func sweepOutcome(err error) string {
	if errors.Is(err, errs.ErrTransientStore) {
		return "transient"
	}
	return "error"
}

func orderFromDomain(o *order.Order) api.Order {
	customer := o.Customer()
	items := o.Items()

	response := api.Order{
		Id:          o.ID().Bytes(),
		OrderNumber: o.Number().String(),
		Customer: api.Customer{
			Name:    customer.Name(),
			Email:   customer.Email(),
			Phone:   customer.Phone(),
			Address: customer.Address(),
			State:   customer.State(),
		},
		Items:           make([]api.OrderItem, len(items)),
		DeliveryOption:  o.DeliveryOption().String(),
		Subtotal:        o.Subtotal(),
		DeliveryFee:     o.DeliveryFee(),
		Tax:             o.Tax(),
		TotalAmount:     o.Total(),
		Status:          o.Status().String(),
		EscalationLevel: o.EscalationLevel(),
		EscalationDate:  o.EscalationDate(),
		AcknowledgedAt:  o.AcknowledgedAt(),
		DeliveredAt:     o.DeliveredAt(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		Version:         o.Version(),
	}
	for i, item := range items {
		response.Items[i] = api.OrderItem{
			Sku:       item.SKU(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		}
	}
	if d := o.Distributor(); d != nil {
		id := d.ID().Bytes()
		response.DistributorId = &id
		response.DistributorName = d.Name()
	}
	return response
}

func orderFromView(view queries.OrderView) api.Order {
	response := api.Order{
		Id:          view.ID.Bytes(),
		OrderNumber: view.Number,
		Customer: api.Customer{
			Name:    view.Customer.Name,
			Email:   view.Customer.Email,
			Phone:   view.Customer.Phone,
			Address: view.Customer.Address,
			State:   view.Customer.State,
		},
		Items:           make([]api.OrderItem, len(view.Items)),
		DeliveryOption:  view.DeliveryOption,
		Subtotal:        view.Subtotal,
		DeliveryFee:     view.DeliveryFee,
		Tax:             view.Tax,
		TotalAmount:     view.Total,
		Status:          view.Status,
		EscalationLevel: view.EscalationLevel,
		EscalationDate:  view.EscalationDate,
		DistributorName: view.DistributorName,
		AcknowledgedAt:  view.AcknowledgedAt,
		DeliveredAt:     view.DeliveredAt,
		CreatedAt:       view.CreatedAt,
		UpdatedAt:       view.UpdatedAt,
		Version:         view.Version,
	}
	for i, item := range view.Items {
		response.Items[i] = api.OrderItem{
			Sku:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	if view.DistributorID != nil {
		id := view.DistributorID.Bytes()
		response.DistributorId = &id
	}
	return response
}

func ordersFromViews(views []queries.OrderView) []api.Order {
	response := make([]api.Order, len(views))
	for i, view := range views {
		response[i] = orderFromView(view)
	}
	return response
}
