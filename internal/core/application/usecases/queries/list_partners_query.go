package queries

import (
	"context"
	"errors"
	"time"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/partner"
	"medshop/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrListPartnersQueryIsNotConstructed = errors.New(
	"ListPartnersQuery must be created via NewListPartnersQuery constructor",
)

type PartnerView struct {
	ID        kernel.UUID
	Email     string
	Name      string
	Type      string
	Status    string
	Discount  decimal.Decimal
	Regions   []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ListPartnersQuery struct {
	kind   *partner.Type
	status *partner.Status

	guard guard.ConstructorGuard
}

// NewListPartnersQuery builds a listing filtered by type and status; empty
// strings mean no filter.
func NewListPartnersQuery(kind, status string) (ListPartnersQuery, error) {
	q := ListPartnersQuery{guard: guard.NewConstructorGuard()}

	var errList []error
	if kind != "" {
		k, err := partner.ParseType(kind)
		errList = append(errList, err)
		q.kind = &k
	}
	if status != "" {
		s, err := partner.ParseStatus(status)
		errList = append(errList, err)
		q.status = &s
	}
	if err := errors.Join(errList...); err != nil {
		return ListPartnersQuery{}, err
	}
	return q, nil
}

func (q ListPartnersQuery) Validate() error {
	return q.guard.Validate(ErrListPartnersQueryIsNotConstructed)
}

type ListPartnersQueryHandler struct {
	db *gorm.DB
}

func NewListPartnersQueryHandler(db *gorm.DB) ListPartnersQueryHandler {
	return ListPartnersQueryHandler{db: db}
}

func (h ListPartnersQueryHandler) Handle(ctx context.Context, query ListPartnersQuery) ([]PartnerView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).
		Table("partners").
		Select("id, email, name, type, status, discount_percent, regions, created_at, updated_at")
	if query.kind != nil {
		tx = tx.Where("type = ?", query.kind.String())
	}
	if query.status != nil {
		tx = tx.Where("status = ?", query.status.String())
	}

	rows, err := tx.Order("created_at ASC").Order("email ASC").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]PartnerView, 0)
	for rows.Next() {
		var (
			view    PartnerView
			id      uuid.UUID
			regions pq.StringArray
		)
		if err := rows.Scan(&id, &view.Email, &view.Name, &view.Type, &view.Status,
			&view.Discount, &regions, &view.CreatedAt, &view.UpdatedAt); err != nil {
			return nil, err
		}
		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		view.Regions = []string(regions)
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}
