package http

import (
	"context"
	"log/slog"

	"medshop/internal/api"
	"medshop/internal/core/application/usecases/commands"
	"medshop/internal/core/application/usecases/queries"
	"medshop/internal/core/domain/model/order"
	"medshop/internal/core/domain/model/partner"
	"medshop/internal/core/domain/model/product"
	"medshop/internal/core/domain/model/seminar"
	"medshop/internal/pkg/metrics"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error)
	}
	ChangeOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (commands.ChangeOrderStatusResult, error)
	}
	ReassignDistributorHandler interface {
		Handle(ctx context.Context, cmd commands.ReassignDistributorCommand) (*order.Order, error)
	}
	EscalateOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.EscalateOrdersCommand) (commands.EscalateOrdersResult, error)
	}
	ApplyPartnerHandler interface {
		Handle(ctx context.Context, cmd commands.ApplyPartnerCommand) (*partner.Partner, error)
	}
	ReviewPartnerHandler interface {
		Handle(ctx context.Context, cmd commands.ReviewPartnerCommand) (*partner.Partner, error)
	}
	CreateProductHandler interface {
		Handle(ctx context.Context, cmd commands.CreateProductCommand) (*product.Product, error)
	}
	AdjustStockHandler interface {
		Handle(ctx context.Context, cmd commands.AdjustStockCommand) (int, error)
	}
	CreateSeminarHandler interface {
		Handle(ctx context.Context, cmd commands.CreateSeminarCommand) (*seminar.Seminar, error)
	}
	RegisterForSeminarHandler interface {
		Handle(ctx context.Context, cmd commands.RegisterForSeminarCommand) (seminar.Registration, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error)
	}
	ListEscalatedOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListEscalatedOrdersQuery) ([]queries.OrderView, error)
	}
	ListPartnersHandler interface {
		Handle(ctx context.Context, query queries.ListPartnersQuery) ([]queries.PartnerView, error)
	}
	GetProductHandler interface {
		Handle(ctx context.Context, query queries.GetProductQuery) (queries.PricedProductView, error)
	}
	ListProductsHandler interface {
		Handle(ctx context.Context, query queries.ListProductsQuery) ([]queries.ProductView, error)
	}
	GetSeminarHandler interface {
		Handle(ctx context.Context, query queries.GetSeminarQuery) (queries.SeminarView, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder         CreateOrderHandler
	ChangeOrderStatus   ChangeOrderStatusHandler
	ReassignDistributor ReassignDistributorHandler
	EscalateOrders      EscalateOrdersHandler
	ApplyPartner        ApplyPartnerHandler
	ReviewPartner       ReviewPartnerHandler
	CreateProduct       CreateProductHandler
	AdjustStock         AdjustStockHandler
	CreateSeminar       CreateSeminarHandler
	RegisterForSeminar  RegisterForSeminarHandler

	GetOrder            GetOrderHandler
	ListOrders          ListOrdersHandler
	ListEscalatedOrders ListEscalatedOrdersHandler
	ListPartners        ListPartnersHandler
	GetProduct          GetProductHandler
	ListProducts        ListProductsHandler
	GetSeminar          GetSeminarHandler
}

// Server implements api.ServerInterface on top of the command and query
// handlers. Every use case call is retried on transient store errors.
type Server struct {
	h       Handlers
	retry   retrier
	metrics *metrics.Metrics
	logger  *slog.Logger
}

var _ api.ServerInterface = (*Server)(nil)

// NewServer creates a server. retryAttempts is the number of extra attempts
// made after a transient store error; zero disables retries.
func NewServer(h Handlers, retryAttempts uint64, m *metrics.Metrics, logger *slog.Logger) *Server {
	logger = logger.With("component", "http")
	return &Server{
		h:       h,
		retry:   retrier{attempts: retryAttempts, metrics: m, logger: logger},
		metrics: m,
		logger:  logger,
	}
}
