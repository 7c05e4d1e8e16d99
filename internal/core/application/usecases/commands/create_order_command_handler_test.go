package commands_test

import (
	"errors"
	"testing"

	"medshop/internal/core/application/usecases/commands"
	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/order"
	"medshop/internal/core/domain/model/partner"
	"medshop/internal/core/domain/services"
	"medshop/internal/core/ports"
	"medshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCartCommand(t *testing.T, customer commands.CustomerInput) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(customer, []commands.ItemInput{
		{SKU: "A", Name: "gloves", Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
		{SKU: "B", Name: "masks", Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
	}, "dispatch")
	require.NoError(t, err)
	return cmd
}

func newCreateOrderHandler(t *testing.T, uow *MockUoW, defaultEmail string) commands.CreateOrderCommandHandler {
	t.Helper()
	return commands.NewCreateOrderCommandHandler(
		orderUoWFactory{uow: uow},
		services.NewDistributorResolver(defaultEmail),
		order.NewNumberGenerator(),
		feeSchedule(t),
		fixedClock,
		quietLogger,
	)
}

func TestCreateOrderCommandHandler_Handle_AssignsRegionalDistributor(t *testing.T) {
	ctx := t.Context()
	lagos := approvedDistributor(t, "sales@lagosmed.ng", "lagos")

	partners := new(MockPartnerRepository)
	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PartnerRepository").Return(partners).Once(),
		partners.On("ListApprovedDistributors", ctx, kernel.Region("lagos")).Return([]*partner.Partner{lagos}, nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Add", ctx, mock.MatchedBy(func(o *order.Order) bool {
			return o.IsAssigned() && o.Distributor().ID().IsEqual(lagos.ID())
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	result, err := newCreateOrderHandler(t, uow, "hq@medshop.ng").Handle(ctx, newCartCommand(t, lagosCustomer))

	require.NoError(t, err)
	assert.Equal(t, order.Pending, result.Status)
	assert.True(t, decimal.NewFromInt(270).Equal(result.Total), result.Total.String())
	require.NotNil(t, result.Distributor)
	assert.True(t, result.Distributor.ID().IsEqual(lagos.ID()))
	assert.Regexp(t, `^ORD-261015120000-`, result.Number.String())
	partners.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
	orders.AssertExpectations(t)
	partners.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_SameRegionSameDistributor(t *testing.T) {
	ctx := t.Context()
	first := approvedDistributor(t, "a@lagosmed.ng", "lagos")
	second := approvedDistributor(t, "b@lagosmed.ng", "lagos")

	partners := new(MockPartnerRepository)
	partners.On("ListApprovedDistributors", ctx, kernel.Region("lagos")).Return([]*partner.Partner{second, first}, nil)
	orders := new(MockOrderRepository)
	orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("PartnerRepository").Return(partners)
	uow.On("OrderRepository").Return(orders)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	handler := newCreateOrderHandler(t, uow, "")
	one, err := handler.Handle(ctx, newCartCommand(t, lagosCustomer))
	require.NoError(t, err)
	other := lagosCustomer
	other.State = "  LAGOS state"
	two, err := handler.Handle(ctx, newCartCommand(t, other))
	require.NoError(t, err)

	require.NotNil(t, one.Distributor)
	require.NotNil(t, two.Distributor)
	assert.True(t, one.Distributor.ID().IsEqual(first.ID()))
	assert.True(t, two.Distributor.ID().IsEqual(first.ID()))
	assert.NotEqual(t, one.Number, two.Number)
}

func TestCreateOrderCommandHandler_Handle_FallsBackToDefault(t *testing.T) {
	ctx := t.Context()
	hq := approvedDistributor(t, "hq@medshop.ng", "abuja")

	partners := new(MockPartnerRepository)
	partners.On("ListApprovedDistributors", ctx, kernel.Region("kano")).Return([]*partner.Partner{}, nil).Once()
	partners.On("FindByEmail", ctx, "hq@medshop.ng").Return(hq, nil).Once()
	orders := new(MockOrderRepository)
	orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PartnerRepository").Return(partners).Once()
	uow.On("OrderRepository").Return(orders).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	kano := lagosCustomer
	kano.State = "Kano"
	result, err := newCreateOrderHandler(t, uow, "HQ@medshop.ng").Handle(ctx, newCartCommand(t, kano))

	require.NoError(t, err)
	require.NotNil(t, result.Distributor)
	assert.True(t, result.Distributor.ID().IsEqual(hq.ID()))
	partners.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_UnassignedNotifiesCare(t *testing.T) {
	ctx := t.Context()

	partners := new(MockPartnerRepository)
	partners.On("ListApprovedDistributors", ctx, kernel.Region("kano")).Return([]*partner.Partner{}, nil).Once()
	partners.On("FindByEmail", ctx, "hq@medshop.ng").Return(nil, errs.NewObjectNotFoundError("partner", "hq@medshop.ng")).Once()
	orders := new(MockOrderRepository)
	notifier := new(MockCareNotifier)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PartnerRepository").Return(partners).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Add", ctx, mock.MatchedBy(func(o *order.Order) bool { return !o.IsAssigned() })).Return(nil).Once(),
		uow.On("CareNotifier").Return(notifier).Once(),
		notifier.On("Notify", ctx, mock.MatchedBy(func(e ports.CareEvent) bool {
			return e.Kind == ports.CareEventUnassigned && e.Status == "pending" && e.At.Equal(now)
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	kano := lagosCustomer
	kano.State = "Kano"
	result, err := newCreateOrderHandler(t, uow, "hq@medshop.ng").Handle(ctx, newCartCommand(t, kano))

	require.NoError(t, err)
	assert.Nil(t, result.Distributor)
	assert.Equal(t, order.Pending, result.Status)
	notifier.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_StoreErrorAborts(t *testing.T) {
	ctx := t.Context()
	lagos := approvedDistributor(t, "sales@lagosmed.ng", "lagos")
	storeErr := errs.NewTransientStoreError("insert order", errors.New("connection reset"))

	partners := new(MockPartnerRepository)
	partners.On("ListApprovedDistributors", ctx, kernel.Region("lagos")).Return([]*partner.Partner{lagos}, nil).Once()
	orders := new(MockOrderRepository)
	orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(storeErr).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PartnerRepository").Return(partners).Once()
	uow.On("OrderRepository").Return(orders).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	_, err := newCreateOrderHandler(t, uow, "").Handle(ctx, newCartCommand(t, lagosCustomer))

	require.ErrorIs(t, err, errs.ErrTransientStore)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

	_, err := newCreateOrderHandler(t, uow, "").Handle(ctx, newCartCommand(t, lagosCustomer))

	require.Error(t, err)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	_, err := newCreateOrderHandler(t, new(MockUoW), "").Handle(t.Context(), commands.CreateOrderCommand{})
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}
