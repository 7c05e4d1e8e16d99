package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("orders").Select(orderColumns)
	if query.distributorID != nil {
		tx = tx.Where("distributor_id = ?", query.distributorID.Bytes())
	}
	if query.status != nil {
		tx = tx.Where("status = ?", query.status.String())
	}
	if query.from != nil {
		tx = tx.Where("created_at >= ?", *query.from)
	}
	if query.to != nil {
		tx = tx.Where("created_at < ?", *query.to)
	}

	rows, err := tx.Order("created_at DESC").Order("order_number DESC").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderViews(rows)
}
