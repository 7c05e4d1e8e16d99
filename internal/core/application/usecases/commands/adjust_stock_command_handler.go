package commands

import (
	"context"
)

// AdjustStockCommandHandler applies the delta with a single conditional
// update and returns the new stock level.
type AdjustStockCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewAdjustStockCommandHandler(uowFactory CatalogUoWFactory) AdjustStockCommandHandler {
	return AdjustStockCommandHandler{uowFactory: uowFactory}
}

func (h AdjustStockCommandHandler) Handle(ctx context.Context, cmd AdjustStockCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stock, err := uow.ProductRepository().AdjustStock(ctx, cmd.Key(), cmd.Delta())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return stock, nil
}
