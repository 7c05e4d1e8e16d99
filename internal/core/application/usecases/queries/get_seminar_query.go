package queries

import (
	"context"
	"errors"
	"time"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/pkg/errs"
	"medshop/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrGetSeminarQueryIsNotConstructed = errors.New(
	"GetSeminarQuery must be created via NewGetSeminarQuery constructor",
)

type SeminarView struct {
	ID              kernel.UUID
	Title           string
	StartsAt        time.Time
	Capacity        int
	RegisteredCount int
	SeatsLeft       int
}

type GetSeminarQuery struct {
	id kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetSeminarQuery(id string) (GetSeminarQuery, error) {
	parsed, err := kernel.UUIDFromString(id)
	if err != nil {
		return GetSeminarQuery{}, err
	}
	return GetSeminarQuery{id: parsed, guard: guard.NewConstructorGuard()}, nil
}

func (q GetSeminarQuery) Validate() error {
	return q.guard.Validate(ErrGetSeminarQueryIsNotConstructed)
}

type GetSeminarQueryHandler struct {
	db *gorm.DB
}

func NewGetSeminarQueryHandler(db *gorm.DB) GetSeminarQueryHandler {
	return GetSeminarQueryHandler{db: db}
}

func (h GetSeminarQueryHandler) Handle(ctx context.Context, query GetSeminarQuery) (SeminarView, error) {
	if err := query.Validate(); err != nil {
		return SeminarView{}, err
	}

	rows, err := h.db.WithContext(ctx).
		Raw("SELECT id, title, starts_at, capacity, registered_count FROM seminars WHERE id = ?", query.id.Bytes()).
		Rows()
	if err != nil {
		return SeminarView{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return SeminarView{}, err
		}
		return SeminarView{}, errs.NewObjectNotFoundError("seminar", query.id.String())
	}

	var (
		view SeminarView
		id   uuid.UUID
	)
	if err := rows.Scan(&id, &view.Title, &view.StartsAt, &view.Capacity, &view.RegisteredCount); err != nil {
		return SeminarView{}, err
	}
	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return SeminarView{}, err
	}
	view.SeatsLeft = max(view.Capacity-view.RegisteredCount, 0)
	return view, nil
}
