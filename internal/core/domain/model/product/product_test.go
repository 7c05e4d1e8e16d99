package product_test

import (
	"testing"
	"time"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/product"
	"medshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gloves(t *testing.T) *product.Product {
	t.Helper()
	p, err := product.NewProduct("GLV-100", "Nitrile gloves", product.Prices{
		Retail:      decimal.NewFromInt(100),
		Distributor: decimal.NewFromInt(80),
		Wholesaler:  decimal.NewFromInt(70),
	}, 5, map[string]any{"size": "M"}, time.Now())
	require.NoError(t, err)
	return p
}

func TestProduct_PriceFor(t *testing.T) {
	p := gloves(t)

	assert.True(t, decimal.NewFromInt(100).Equal(p.PriceFor(product.Retail)))
	assert.True(t, decimal.NewFromInt(80).Equal(p.PriceFor(product.Distributor)))
	assert.True(t, decimal.NewFromInt(70).Equal(p.PriceFor(product.Wholesaler)))
}

func TestParseTier(t *testing.T) {
	tier, err := product.ParseTier("")
	require.NoError(t, err)
	assert.Equal(t, product.Retail, tier)

	tier, err = product.ParseTier(" Wholesaler ")
	require.NoError(t, err)
	assert.Equal(t, product.Wholesaler, tier)

	_, err = product.ParseTier("vip")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestProduct_AdjustStock(t *testing.T) {
	p := gloves(t)

	require.NoError(t, p.AdjustStock(-5))
	assert.Equal(t, 0, p.Stock())

	require.ErrorIs(t, p.AdjustStock(-1), errs.ErrConflict)
	assert.Equal(t, 0, p.Stock())
}

func TestNewProduct_Invalid(t *testing.T) {
	_, err := product.NewProduct(" ", "", product.Prices{Retail: decimal.NewFromInt(-1)}, -2, nil, time.Now())

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewProduct_PricesFitMoneyColumns(t *testing.T) {
	at := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	_, err := product.NewProduct("PRD-1", "Gauze", product.Prices{Retail: decimal.RequireFromString("9.999")}, 1, nil, at)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "retail price")

	_, err = product.NewProduct("PRD-1", "Gauze", product.Prices{Wholesaler: decimal.RequireFromString("10000000000")}, 1, nil, at)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Contains(t, err.Error(), "wholesaler price")

	p, err := product.NewProduct("PRD-1", "Gauze", product.Prices{Retail: kernel.MaxAmount}, 1, nil, at)
	require.NoError(t, err)
	assert.True(t, kernel.MaxAmount.Equal(p.PriceFor(product.Retail)))
}

func TestNewKey(t *testing.T) {
	key, err := product.NewKey()
	require.NoError(t, err)
	assert.Regexp(t, `^PRD-[0-9a-f]{8}$`, key)
}
