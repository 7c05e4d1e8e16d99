package queries

import (
	"context"
	"errors"

	"medshop/internal/core/domain/model/order"
	"medshop/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrListEscalatedOrdersQueryIsNotConstructed = errors.New(
	"ListEscalatedOrdersQuery must be created via NewListEscalatedOrdersQuery constructor",
)

// ListEscalatedOrdersQuery is the customer-care work queue: open orders that
// were escalated or never got a distributor, highest level first.
type ListEscalatedOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewListEscalatedOrdersQuery() ListEscalatedOrdersQuery {
	return ListEscalatedOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q ListEscalatedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListEscalatedOrdersQueryIsNotConstructed)
}

type ListEscalatedOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListEscalatedOrdersQueryHandler(db *gorm.DB) ListEscalatedOrdersQueryHandler {
	return ListEscalatedOrdersQueryHandler{db: db}
}

func (h ListEscalatedOrdersQueryHandler) Handle(ctx context.Context, query ListEscalatedOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE status NOT IN (?, ?)
		  AND (escalation_level > 0 OR distributor_id IS NULL)
		ORDER BY escalation_level DESC, created_at ASC
	`, order.Delivered.String(), order.Cancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderViews(rows)
}
