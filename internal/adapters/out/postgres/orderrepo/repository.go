package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/order"
	"medshop/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	// A duplicate id or order number surfaces as a conflict through the
	// error-classifying callbacks.
	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return fmt.Errorf("insert order %s: %w", aggregate.Number(), err)
	}
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update is a compare-and-swap on the version column. On success the
// aggregate's version is advanced to match the stored row.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(mutableColumns(dto))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var stored int
		err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Select("version").Scan(&stored).Error
		if err != nil {
			return err
		}
		if stored == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewVersionIsInvalidError("order "+aggregate.Number().String(),
			fmt.Errorf("expected version %d, stored version is %d", dto.Version, stored))
	}

	aggregate.MarkPersisted()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, id.String(), "id = ?", id.Bytes())
}

func (r *GormOrderRepository) GetByNumber(ctx context.Context, number order.Number) (*order.Order, error) {
	return r.first(ctx, number.String(), "order_number = ?", number.String())
}

// first loads the single order matching cond; ref names it in the not-found error.
func (r *GormOrderRepository) first(ctx context.Context, ref string, cond string, arg any) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).Where(cond, arg).Take(&dto).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, errs.NewObjectNotFoundError("order", ref)
	case err != nil:
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormOrderRepository) ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at <= ?", order.Pending.String(), cutoff).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
