package queries

import (
	"errors"
	"fmt"
	"time"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/order"
	"medshop/internal/pkg/errs"
	"medshop/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// OrderFilter narrows ListOrdersQuery. Zero fields do not filter.
type OrderFilter struct {
	DistributorID string
	Status        string
	From          *time.Time
	To            *time.Time
}

// ListOrdersQuery lists orders newest first, optionally by distributor,
// status and a created_at range (from inclusive, to exclusive).
type ListOrdersQuery struct {
	distributorID *kernel.UUID
	status        *order.Status
	from          *time.Time
	to            *time.Time

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(filter OrderFilter) (ListOrdersQuery, error) {
	q := ListOrdersQuery{from: filter.From, to: filter.To, guard: guard.NewConstructorGuard()}

	var errList []error
	if filter.DistributorID != "" {
		id, err := kernel.UUIDFromString(filter.DistributorID)
		if err != nil {
			errList = append(errList, err)
		}
		q.distributorID = &id
	}
	if filter.Status != "" {
		status, err := order.ParseStatus(filter.Status)
		if err != nil {
			errList = append(errList, err)
		}
		q.status = &status
	}
	if q.from != nil && q.to != nil && !q.from.Before(*q.to) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("date range",
			fmt.Errorf("from %s is not before to %s", q.from.Format(time.RFC3339), q.to.Format(time.RFC3339))))
	}
	if err := errors.Join(errList...); err != nil {
		return ListOrdersQuery{}, err
	}
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}
