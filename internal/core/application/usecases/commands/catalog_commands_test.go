package commands_test

import (
	"testing"

	"medshop/internal/core/application/usecases/commands"
	"medshop/internal/core/domain/model/product"
	"medshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateProductCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateProductCommand("", "Nitrile gloves", product.Prices{
		Retail: decimal.NewFromInt(100), Distributor: decimal.NewFromInt(80), Wholesaler: decimal.NewFromInt(70),
	}, 40, map[string]any{"size": "M"})
	require.NoError(t, err)
	assert.Regexp(t, `^PRD-`, cmd.Key())

	products := new(MockProductRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(products).Once(),
		products.On("Add", ctx, mock.AnythingOfType("*product.Product")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	p, err := commands.NewCreateProductCommandHandler(catalogUoWFactory{uow: uow}, fixedClock).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 40, p.Stock())
	uow.AssertExpectations(t)
}

func TestCreateProductCommandHandler_Handle_InvalidProduct(t *testing.T) {
	cmd, err := commands.NewCreateProductCommand("GLV", "", product.Prices{}, -1, nil)
	require.NoError(t, err)

	_, err = commands.NewCreateProductCommandHandler(catalogUoWFactory{uow: new(MockUoW)}, fixedClock).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestAdjustStockCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAdjustStockCommand("GLV-100", -3)
	require.NoError(t, err)

	products := new(MockProductRepository)
	products.On("AdjustStock", ctx, "GLV-100", -3).Return(7, nil).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ProductRepository").Return(products).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	stock, err := commands.NewAdjustStockCommandHandler(catalogUoWFactory{uow: uow}).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 7, stock)
}

func TestAdjustStockCommandHandler_Handle_WouldGoNegative(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAdjustStockCommand("GLV-100", -50)
	require.NoError(t, err)

	products := new(MockProductRepository)
	products.On("AdjustStock", ctx, "GLV-100", -50).Return(0, errs.NewConflictError("product stock")).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ProductRepository").Return(products).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	_, err = commands.NewAdjustStockCommandHandler(catalogUoWFactory{uow: uow}).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewAdjustStockCommand_Invalid(t *testing.T) {
	_, err := commands.NewAdjustStockCommand(" ", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
