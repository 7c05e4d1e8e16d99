package seminarrepo

import (
	"context"
	"errors"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/seminar"
	"medshop/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormSeminarRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormSeminarRepository(db *gorm.DB, tracker aggregateTracker) *GormSeminarRepository {
	return &GormSeminarRepository{db: db, tracker: tracker}
}

func (r *GormSeminarRepository) Add(ctx context.Context, aggregate *seminar.Seminar) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormSeminarRepository) Get(ctx context.Context, id kernel.UUID) (*seminar.Seminar, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SeminarDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("seminar", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// ReserveSeat takes one seat in a single statement; concurrent callers can
// never push registered_count past capacity.
func (r *GormSeminarRepository) ReserveSeat(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&SeminarDTO{}).
		Where("id = ? AND registered_count < capacity", id.Bytes()).
		UpdateColumn("registered_count", gorm.Expr("registered_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
		return seminar.FullError(id)
	}
	return nil
}

func (r *GormSeminarRepository) AddRegistration(ctx context.Context, registration seminar.Registration) error {
	if err := registration.Token().Validate(); err != nil {
		return err
	}

	dto := registrationFromDomain(registration)
	return r.db.WithContext(ctx).Omit("Seminar").Create(&dto).Error
}
