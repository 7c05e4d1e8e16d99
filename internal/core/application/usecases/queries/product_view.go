package queries

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const productColumns = "key, name, retail_price, distributor_price, wholesaler_price, stock, attributes, created_at"

type ProductView struct {
	Key              string
	Name             string
	RetailPrice      decimal.Decimal
	DistributorPrice decimal.Decimal
	WholesalerPrice  decimal.Decimal
	Stock            int
	Attributes       map[string]any
	CreatedAt        time.Time
}

func scanProductViews(rows *sql.Rows) ([]ProductView, error) {
	views := make([]ProductView, 0)
	for rows.Next() {
		var (
			view       ProductView
			attributes datatypes.JSONMap
		)
		if err := rows.Scan(&view.Key, &view.Name, &view.RetailPrice, &view.DistributorPrice,
			&view.WholesalerPrice, &view.Stock, &attributes, &view.CreatedAt); err != nil {
			return nil, err
		}
		view.Attributes = map[string]any(attributes)
		if view.Attributes == nil {
			view.Attributes = map[string]any{}
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}
