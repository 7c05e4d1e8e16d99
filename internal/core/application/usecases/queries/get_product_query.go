package queries

import (
	"context"
	"errors"
	"strings"

	"medshop/internal/core/domain/model/product"
	"medshop/internal/pkg/errs"
	"medshop/internal/pkg/guard"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrGetProductQueryIsNotConstructed = errors.New(
	"GetProductQuery must be created via NewGetProductQuery constructor",
)

// PricedProductView is a product together with the price a buyer of the
// requested tier pays.
type PricedProductView struct {
	ProductView
	Tier  string
	Price decimal.Decimal
}

type GetProductQuery struct {
	key  string
	tier product.Tier

	guard guard.ConstructorGuard
}

func NewGetProductQuery(key, tier string) (GetProductQuery, error) {
	key = strings.TrimSpace(key)
	parsed, err := product.ParseTier(tier)
	if key == "" {
		err = errors.Join(errs.NewValueIsRequiredError("product key"), err)
	}
	if err != nil {
		return GetProductQuery{}, err
	}
	return GetProductQuery{key: key, tier: parsed, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProductQuery) Validate() error {
	return q.guard.Validate(ErrGetProductQueryIsNotConstructed)
}

type GetProductQueryHandler struct {
	db *gorm.DB
}

func NewGetProductQueryHandler(db *gorm.DB) GetProductQueryHandler {
	return GetProductQueryHandler{db: db}
}

func (h GetProductQueryHandler) Handle(ctx context.Context, query GetProductQuery) (PricedProductView, error) {
	if err := query.Validate(); err != nil {
		return PricedProductView{}, err
	}

	rows, err := h.db.WithContext(ctx).
		Table("products").
		Select(productColumns).
		Where("key = ?", query.key).
		Limit(1).
		Rows()
	if err != nil {
		return PricedProductView{}, err
	}
	defer rows.Close()

	views, err := scanProductViews(rows)
	if err != nil {
		return PricedProductView{}, err
	}
	if len(views) == 0 {
		return PricedProductView{}, errs.NewObjectNotFoundError("product", query.key)
	}

	view := views[0]
	return PricedProductView{
		ProductView: view,
		Tier:        string(query.tier),
		Price:       priceFor(view, query.tier),
	}, nil
}

func priceFor(view ProductView, tier product.Tier) decimal.Decimal {
	switch tier {
	case product.Distributor:
		return view.DistributorPrice
	case product.Wholesaler:
		return view.WholesalerPrice
	default:
		return view.RetailPrice
	}
}
