package commands

import (
	"errors"
	"strings"

	"medshop/internal/core/domain/model/product"
	"medshop/internal/pkg/guard"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand adds a catalog entry. An empty key is generated.
type CreateProductCommand struct {
	key        string
	name       string
	prices     product.Prices
	stock      int
	attributes map[string]any

	guard guard.ConstructorGuard
}

func NewCreateProductCommand(key, name string, prices product.Prices, stock int, attributes map[string]any) (CreateProductCommand, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		generated, err := product.NewKey()
		if err != nil {
			return CreateProductCommand{}, err
		}
		key = generated
	}
	return CreateProductCommand{
		key:        key,
		name:       name,
		prices:     prices,
		stock:      stock,
		attributes: attributes,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

func (c CreateProductCommand) Key() string                { return c.key }
func (c CreateProductCommand) Name() string               { return c.name }
func (c CreateProductCommand) Prices() product.Prices     { return c.prices }
func (c CreateProductCommand) Stock() int                 { return c.stock }
func (c CreateProductCommand) Attributes() map[string]any { return c.attributes }
