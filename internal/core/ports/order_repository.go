// Package ports defines the contracts between the order desk core and its
// infrastructure: repositories, the unit of work and customer-care
// notifications.
package ports

import (
	"context"
	"time"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. A duplicate order number is a ConflictError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the aggregate if the stored version still equals
	// aggregate.Version(), then advances the version. A stale aggregate
	// yields VersionIsInvalidError and nothing is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its human facing number.
	GetByNumber(ctx context.Context, number order.Number) (*order.Order, error)

	// ListPendingCreatedBefore returns pending orders created at or before
	// cutoff, oldest first. The escalation sweep narrows these further.
	ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
