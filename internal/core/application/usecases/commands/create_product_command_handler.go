package commands

import (
	"context"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/product"
)

type CreateProductCommandHandler struct {
	uowFactory CatalogUoWFactory
	clock      kernel.Clock
}

func NewCreateProductCommandHandler(uowFactory CatalogUoWFactory, clock kernel.Clock) CreateProductCommandHandler {
	return CreateProductCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*product.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := product.NewProduct(cmd.Key(), cmd.Name(), cmd.Prices(), cmd.Stock(), cmd.Attributes(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProductRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return aggregate, nil
}
