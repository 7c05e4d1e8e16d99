package productrepo

import (
	"context"
	"errors"
	"fmt"

	"medshop/internal/core/domain/model/product"
	"medshop/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormProductRepository) Get(ctx context.Context, key string) (*product.Product, error) {
	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", key)
		}
		return nil, err
	}
	return toDomain(dto)
}

// AdjustStock applies delta only while the result stays non-negative and
// reads the new level back in the same statement.
func (r *GormProductRepository) AdjustStock(ctx context.Context, key string, delta int) (int, error) {
	var stock []int
	err := r.db.WithContext(ctx).Raw(
		"UPDATE products SET stock = stock + ? WHERE key = ? AND stock + ? >= 0 RETURNING stock",
		delta, key, delta,
	).Scan(&stock).Error
	if err != nil {
		return 0, err
	}
	if len(stock) == 1 {
		return stock[0], nil
	}

	current, err := r.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	return 0, errs.NewConflictErrorWithCause("product stock",
		fmt.Errorf("%s has %d in stock, cannot apply %d", key, current.Stock(), delta))
}
