// Package product holds catalog entries with tiered pricing and stock.
package product

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Tier selects which price list a buyer pays.
type Tier string

const (
	Retail      Tier = "retail"
	Distributor Tier = "distributor"
	Wholesaler  Tier = "wholesaler"
)

func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case "":
		return Retail, nil
	case Retail, Distributor, Wholesaler:
		return t, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("tier", fmt.Errorf("%q is not one of retail, distributor, wholesaler", s))
	}
}

// Prices are the per-tier unit prices of a product.
type Prices struct {
	Retail      decimal.Decimal
	Distributor decimal.Decimal
	Wholesaler  decimal.Decimal
}

// Product is a catalog entry. Stock never goes below zero.
type Product struct {
	key        string
	name       string
	prices     Prices
	stock      int
	attributes map[string]any
	createdAt  time.Time

	isConstructed bool
}

// NewKey returns a generated product key, e.g. PRD-9f2c1a7b.
func NewKey() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("product key entropy: %w", err)
	}
	return "PRD-" + hex.EncodeToString(buf), nil
}

func NewProduct(key, name string, prices Prices, stock int, attributes map[string]any, at time.Time) (*Product, error) {
	p := &Product{createdAt: at, isConstructed: true}

	var errList []error
	p.key = strings.TrimSpace(key)
	if p.key == "" {
		errList = append(errList, errs.NewValueIsRequiredError("product key"))
	}
	p.name = strings.TrimSpace(name)
	if p.name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("product name"))
	}
	for label, price := range map[string]decimal.Decimal{
		"retail price":      prices.Retail,
		"distributor price": prices.Distributor,
		"wholesaler price":  prices.Wholesaler,
	} {
		errList = append(errList, kernel.ValidateAmount(label, price))
	}
	if stock < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("stock", stock, 0, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	p.prices = prices
	p.stock = stock
	p.attributes = attributes
	if p.attributes == nil {
		p.attributes = map[string]any{}
	}
	return p, nil
}

func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) Key() string                { return p.key }
func (p *Product) Name() string               { return p.name }
func (p *Product) Prices() Prices             { return p.prices }
func (p *Product) Stock() int                 { return p.stock }
func (p *Product) Attributes() map[string]any { return p.attributes }
func (p *Product) CreatedAt() time.Time       { return p.createdAt }

// PriceFor returns the unit price the given tier pays.
func (p *Product) PriceFor(tier Tier) decimal.Decimal {
	switch tier {
	case Distributor:
		return p.prices.Distributor
	case Wholesaler:
		return p.prices.Wholesaler
	default:
		return p.prices.Retail
	}
}

// AdjustStock applies delta in memory. Stores apply the same rule with a
// conditional update.
func (p *Product) AdjustStock(delta int) error {
	if p.stock+delta < 0 {
		return errs.NewConflictErrorWithCause("product stock", fmt.Errorf("%s has %d in stock, cannot apply %d", p.key, p.stock, delta))
	}
	p.stock += delta
	return nil
}
