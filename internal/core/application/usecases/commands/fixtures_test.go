package commands_test

import (
	"testing"
	"time"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/order"
	"medshop/internal/core/domain/model/partner"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func pendingOrder(t *testing.T, createdAt time.Time) *order.Order {
	t.Helper()
	customer, err := order.NewCustomer("Ada Obi", "ada@example.com", "+2348000000000", "12 Marina Rd", "Lagos")
	require.NoError(t, err)
	item, err := order.NewLineItem("GLV-100", "Nitrile gloves", 2, decimal.NewFromInt(100))
	require.NoError(t, err)
	number, err := order.NewNumberGenerator().Next(createdAt)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), number, customer, []order.LineItem{item}, order.Dispatch, order.Charges{}, createdAt)
	require.NoError(t, err)
	return o
}

func approvedDistributor(t *testing.T, email string, regions ...string) *partner.Partner {
	t.Helper()
	p, err := partner.RestorePartner(partner.Snapshot{
		ID:        kernel.NewUUID(),
		Email:     email,
		Name:      "Distributor " + email,
		Type:      partner.Distributor,
		Status:    partner.Approved,
		Discount:  decimal.NewFromInt(10),
		Regions:   regions,
		CreatedAt: now.Add(-30 * 24 * time.Hour),
		UpdatedAt: now.Add(-30 * 24 * time.Hour),
	})
	require.NoError(t, err)
	return p
}

func feeSchedule(t *testing.T) order.FeeSchedule {
	t.Helper()
	fees, err := order.NewFeeSchedule(map[order.DeliveryOption]decimal.Decimal{
		order.Dispatch: decimal.NewFromInt(20),
		order.Courier:  decimal.NewFromInt(35),
	}, decimal.Zero)
	require.NoError(t, err)
	return fees
}
