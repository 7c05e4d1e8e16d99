package queries

import (
	"errors"

	"medshop/internal/core/domain/model/order"
	"medshop/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery fetches one order by id or order number.
type GetOrderQuery struct {
	ref order.Ref

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderRef string) (GetOrderQuery, error) {
	ref, err := order.ParseRef(orderRef)
	if err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{ref: ref, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Ref() order.Ref { return q.ref }
