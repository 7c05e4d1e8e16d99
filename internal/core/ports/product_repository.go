package ports

import (
	"context"

	"medshop/internal/core/domain/model/product"
)

type ProductRepository interface {
	// Add persists a new product. A duplicate key is a ConflictError.
	Add(ctx context.Context, aggregate *product.Product) error
	Get(ctx context.Context, key string) (*product.Product, error)

	// AdjustStock adds delta to the stored stock in one conditional update
	// and returns the new level. A result below zero is a ConflictError and
	// leaves the stock untouched.
	AdjustStock(ctx context.Context, key string, delta int) (int, error)
}
