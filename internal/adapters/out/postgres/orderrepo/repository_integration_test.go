package orderrepo_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"medshop/internal/adapters/out/postgres/orderrepo"
	"medshop/internal/adapters/out/postgres/pgtest"
	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/order"
	"medshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
	numbers    *order.NumberGenerator
}

var createdAt = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.numbers = order.NewNumberGenerator()
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(at time.Time, state string) *order.Order {
	customer, err := order.NewCustomer("Ada Obi", "ada@example.com", "+2348000000000", "12 Marina Rd", state)
	suite.Require().NoError(err)
	gloves, err := order.NewLineItem("GLV-100", "Nitrile gloves", 2, decimal.NewFromInt(100))
	suite.Require().NoError(err)
	syringes, err := order.NewLineItem("SYR-5", "Syringe 5ml", 1, decimal.RequireFromString("50.25"))
	suite.Require().NoError(err)
	number, err := suite.numbers.Next(at)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), number, customer, []order.LineItem{gloves, syringes}, order.Dispatch,
		order.Charges{DeliveryFee: decimal.NewFromInt(20)}, at)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsAggregate() {
	ctx := context.Background()
	o := suite.newOrder(createdAt, "Lagos")
	distributor, err := order.NewDistributorRef(kernel.NewUUID(), "Lagos Medical Supplies")
	suite.Require().NoError(err)
	suite.Require().NoError(o.AssignDistributor(distributor, createdAt))

	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Equal(o.Number(), got.Number())
	suite.Equal(order.Pending, got.Status())
	suite.Equal(order.Dispatch, got.DeliveryOption())
	suite.Equal("lagos", mustRegion(suite, got))
	suite.Require().Len(got.Items(), 2)
	suite.Equal("SYR-5", got.Items()[1].SKU())
	suite.True(decimal.RequireFromString("250.25").Equal(got.Subtotal()))
	suite.True(decimal.RequireFromString("270.25").Equal(got.Total()))
	suite.Require().NotNil(got.Distributor())
	suite.Equal(distributor.ID(), got.Distributor().ID())
	suite.Equal("Lagos Medical Supplies", got.Distributor().Name())
	suite.True(createdAt.Equal(got.CreatedAt()))
	suite.Equal(1, got.Version())
}

func mustRegion(suite *OrderRepositoryIntegrationTestSuite, o *order.Order) string {
	region, ok := o.Customer().Region()
	suite.Require().True(ok)
	return region.String()
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateNumber_IsConflict() {
	ctx := context.Background()
	first := suite.newOrder(createdAt, "Lagos")
	suite.Require().NoError(suite.repository.Add(ctx, first))

	dup, err := order.RestoreOrder(order.Snapshot{
		ID:             kernel.NewUUID(),
		Number:         first.Number(),
		Customer:       first.Customer(),
		Items:          first.Items(),
		DeliveryOption: first.DeliveryOption(),
		Status:         order.Pending,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
		Version:        1,
	})
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, dup)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByNumber() {
	ctx := context.Background()
	o := suite.newOrder(createdAt, "Abuja")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.GetByNumber(ctx, o.Number())
	suite.Require().NoError(err)
	suite.Equal(o.ID(), got.ID())

	_, err = suite.repository.GetByNumber(ctx, order.Number("ORD-261015093000-zzzz000000"))
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AdvancesVersionAndPersistsStamps() {
	ctx := context.Background()
	o := suite.newOrder(createdAt, "Lagos")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	ackAt := createdAt.Add(20 * time.Minute)
	changed, err := o.ChangeStatus(order.Acknowledged, kernel.RoleDistributor, ackAt)
	suite.Require().NoError(err)
	suite.Require().True(changed)

	suite.Require().NoError(suite.repository.Update(ctx, o))
	suite.Equal(2, o.Version())

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Acknowledged, got.Status())
	suite.Equal(2, got.Version())
	suite.Require().NotNil(got.AcknowledgedAt())
	suite.True(ackAt.Equal(*got.AcknowledgedAt()))
	suite.True(ackAt.Equal(got.UpdatedAt()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_IsRejected() {
	ctx := context.Background()
	o := suite.newOrder(createdAt, "Lagos")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	_, err = first.ChangeStatus(order.Acknowledged, kernel.RoleDistributor, createdAt.Add(time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	_, err = second.ChangeStatus(order.Cancelled, kernel.RoleCustomerCare, createdAt.Add(2*time.Minute))
	suite.Require().NoError(err)
	err = suite.repository.Update(ctx, second)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrVersionIsInvalid)
	suite.ErrorIs(err, errs.ErrConflict)
	suite.Equal(1, second.Version())

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Acknowledged, stored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ConcurrentWriters_OneWins() {
	ctx := context.Background()
	o := suite.newOrder(createdAt, "Lagos")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	const writers = 6
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < writers; i++ {
		copyOf, err := suite.repository.Get(ctx, o.ID())
		suite.Require().NoError(err)
		_, err = copyOf.ChangeStatus(order.Acknowledged, kernel.RoleDistributor, createdAt.Add(time.Minute))
		suite.Require().NoError(err)

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := suite.repository.Update(ctx, copyOf)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, errs.ErrConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	suite.Equal(1, succeeded)
	suite.Equal(writers-1, conflicts)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_Missing_ReturnsNotFound() {
	o := suite.newOrder(createdAt, "Lagos")

	err := suite.repository.Update(context.Background(), o)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListPendingCreatedBefore() {
	ctx := context.Background()
	old := suite.newOrder(createdAt.Add(-3*time.Hour), "Lagos")
	older := suite.newOrder(createdAt.Add(-5*time.Hour), "Lagos")
	fresh := suite.newOrder(createdAt, "Lagos")
	acked := suite.newOrder(createdAt.Add(-4*time.Hour), "Lagos")
	_, err := acked.ChangeStatus(order.Acknowledged, kernel.RoleDistributor, createdAt.Add(-4*time.Hour))
	suite.Require().NoError(err)

	for _, o := range []*order.Order{old, older, fresh, acked} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	got, err := suite.repository.ListPendingCreatedBefore(ctx, createdAt.Add(-time.Hour))
	suite.Require().NoError(err)

	suite.Require().Len(got, 2)
	suite.Equal(older.ID(), got[0].ID())
	suite.Equal(old.ID(), got[1].ID())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
