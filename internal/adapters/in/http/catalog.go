package http

import (
	"context"
	"net/http"

	"medshop/internal/api"
	"medshop/internal/core/application/usecases/commands"
	"medshop/internal/core/application/usecases/queries"
	"medshop/internal/core/domain/model/product"

	"github.com/labstack/echo/v4"
)

// CreateProduct handles POST /api/v1/products. A missing key is generated.
func (s *Server) CreateProduct(ctx echo.Context) error {
	var body api.NewProduct
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	cmd, err := commands.NewCreateProductCommand(body.Key, body.Name, product.Prices{
		Retail:      body.RetailPrice,
		Distributor: body.DistributorPrice,
		Wholesaler:  body.WholesalerPrice,
	}, body.Stock, body.Attributes)
	if err != nil {
		return err
	}

	aggregate, err := call(ctx.Request().Context(), s.retry, func(c context.Context) (*product.Product, error) {
		return s.h.CreateProduct.Handle(c, cmd)
	})
	if err != nil {
		return err
	}

	prices := aggregate.Prices()
	return ctx.JSON(http.StatusCreated, api.Product{
		Key:              aggregate.Key(),
		Name:             aggregate.Name(),
		RetailPrice:      prices.Retail,
		DistributorPrice: prices.Distributor,
		WholesalerPrice:  prices.Wholesaler,
		Stock:            aggregate.Stock(),
		Attributes:       aggregate.Attributes(),
		CreatedAt:        aggregate.CreatedAt(),
	})
}

// ListProducts handles GET /api/v1/products.
func (s *Server) ListProducts(ctx echo.Context) error {
	query := queries.NewListProductsQuery()

	views, err := call(ctx.Request().Context(), s.retry, func(c context.Context) ([]queries.ProductView, error) {
		return s.h.ListProducts.Handle(c, query)
	})
	if err != nil {
		return err
	}

	response := make([]api.Product, len(views))
	for i, view := range views {
		response[i] = productFromView(view)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetProduct handles GET /api/v1/products/{key}. The price is the one paid
// by the requested tier, retail when no tier is given.
func (s *Server) GetProduct(ctx echo.Context, key string, params api.GetProductParams) error {
	var tier string
	if params.Tier != nil {
		tier = *params.Tier
	}
	query, err := queries.NewGetProductQuery(key, tier)
	if err != nil {
		return err
	}

	view, err := call(ctx.Request().Context(), s.retry, func(c context.Context) (queries.PricedProductView, error) {
		return s.h.GetProduct.Handle(c, query)
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.PricedProduct{
		Product: productFromView(view.ProductView),
		Tier:    view.Tier,
		Price:   view.Price,
	})
}

// AdjustStock handles PATCH /api/v1/products/{key}/stock.
func (s *Server) AdjustStock(ctx echo.Context, key string) error {
	var body api.StockAdjustment
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	cmd, err := commands.NewAdjustStockCommand(key, body.Delta)
	if err != nil {
		return err
	}

	stock, err := call(ctx.Request().Context(), s.retry, func(c context.Context) (int, error) {
		return s.h.AdjustStock.Handle(c, cmd)
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.StockLevel{Key: key, Stock: stock})
}

func productFromView(view queries.ProductView) api.Product {
	return api.Product{
		Key:              view.Key,
		Name:             view.Name,
		RetailPrice:      view.RetailPrice,
		DistributorPrice: view.DistributorPrice,
		WholesalerPrice:  view.WholesalerPrice,
		Stock:            view.Stock,
		Attributes:       view.Attributes,
		CreatedAt:        view.CreatedAt,
	}
}
