package commands_test

import (
	"context"
	"log/slog"
	"time"

	"medshop/internal/core/application/usecases/commands"
	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/order"
	"medshop/internal/core/domain/model/partner"
	"medshop/internal/core/domain/model/product"
	"medshop/internal/core/domain/model/seminar"
	"medshop/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var (
	now         = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	fixedClock  = kernel.FixedClock{At: now}
	quietLogger = slog.New(slog.DiscardHandler)
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number order.Number) (*order.Order, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockPartnerRepository struct{ mock.Mock }

func (m *MockPartnerRepository) Add(ctx context.Context, p *partner.Partner) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPartnerRepository) Update(ctx context.Context, p *partner.Partner) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*partner.Partner, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*partner.Partner)
	return p, args.Error(1)
}

func (m *MockPartnerRepository) FindByEmail(ctx context.Context, email string) (*partner.Partner, error) {
	args := m.Called(ctx, email)
	p, _ := args.Get(0).(*partner.Partner)
	return p, args.Error(1)
}

func (m *MockPartnerRepository) ListApprovedDistributors(ctx context.Context, region kernel.Region) ([]*partner.Partner, error) {
	args := m.Called(ctx, region)
	partners, _ := args.Get(0).([]*partner.Partner)
	return partners, args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, key string) (*product.Product, error) {
	args := m.Called(ctx, key)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, key string, delta int) (int, error) {
	args := m.Called(ctx, key, delta)
	return args.Int(0), args.Error(1)
}

type MockSeminarRepository struct{ mock.Mock }

func (m *MockSeminarRepository) Add(ctx context.Context, s *seminar.Seminar) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSeminarRepository) Get(ctx context.Context, id kernel.UUID) (*seminar.Seminar, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*seminar.Seminar)
	return s, args.Error(1)
}

func (m *MockSeminarRepository) ReserveSeat(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSeminarRepository) AddRegistration(ctx context.Context, r seminar.Registration) error {
	return m.Called(ctx, r).Error(0)
}

type MockCareNotifier struct{ mock.Mock }

func (m *MockCareNotifier) Notify(ctx context.Context, event ports.CareEvent) error {
	return m.Called(ctx, event).Error(0)
}

// MockUoW satisfies every narrowed unit of work.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) PartnerRepository() ports.PartnerRepository {
	return m.Called().Get(0).(ports.PartnerRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	return m.Called().Get(0).(ports.ProductRepository)
}

func (m *MockUoW) SeminarRepository() ports.SeminarRepository {
	return m.Called().Get(0).(ports.SeminarRepository)
}

func (m *MockUoW) CareNotifier() ports.CareNotifier {
	return m.Called().Get(0).(ports.CareNotifier)
}

type orderUoWFactory struct{ uow *MockUoW }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.uow }

type partnerUoWFactory struct{ uow *MockUoW }

func (f partnerUoWFactory) Create() commands.PartnerUoW { return f.uow }

type catalogUoWFactory struct{ uow *MockUoW }

func (f catalogUoWFactory) Create() commands.CatalogUoW { return f.uow }

type seminarUoWFactory struct{ uow *MockUoW }

func (f seminarUoWFactory) Create() commands.SeminarUoW { return f.uow }

// MockOrderUoWFactory counts Create calls for handlers that open several
// units of work.
type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}
