package queries

import (
	"context"

	"medshop/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError when the reference matches nothing.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	tx := h.db.WithContext(ctx).Table("orders").Select(orderColumns)
	if ref := query.Ref(); ref.IsID() {
		tx = tx.Where("id = ?", ref.ID.Bytes())
	} else {
		tx = tx.Where("order_number = ?", ref.Number.String())
	}

	rows, err := tx.Limit(1).Rows()
	if err != nil {
		return OrderView{}, err
	}
	defer rows.Close()

	views, err := scanOrderViews(rows)
	if err != nil {
		return OrderView{}, err
	}
	if len(views) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.Ref().String())
	}
	return views[0], nil
}
