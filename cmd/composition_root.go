package cmd

import (
	"log/slog"

	httpin "medshop/internal/adapters/in/http"
	"medshop/internal/adapters/out/postgres"
	"medshop/internal/core/application/usecases/commands"
	"medshop/internal/core/application/usecases/queries"
	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/order"
	"medshop/internal/core/domain/services"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	numbers    *order.NumberGenerator
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		numbers:    order.NewNumberGenerator(),
		clock:      kernel.SystemClock{},
		logger:     logger,
	}
}

// DBSettings maps the database part of the configuration.
func (c Config) DBSettings() postgres.ConnectionSettings {
	return postgres.ConnectionSettings{
		Host:             c.DBHost,
		Port:             c.DBPort,
		User:             c.DBUser,
		Password:         c.DBPassword,
		Name:             c.DBName,
		SSLMode:          c.DBSslMode,
		MaxOpenConns:     c.DBMaxOpenConns,
		MaxIdleConns:     c.DBMaxIdleConns,
		StatementTimeout: c.DBStatementTimeout,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) partnerUoWFactory() commands.PartnerUoWFactory {
	return FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) catalogUoWFactory() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) seminarUoWFactory() commands.SeminarUoWFactory {
	return FuncSeminarUoWFactory(func() commands.SeminarUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(),
		services.NewDistributorResolver(c.cfg.DefaultDistributorEmail),
		c.numbers,
		c.cfg.Fees,
		c.clock,
		c.logger,
	)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateReassignDistributorCommandHandler() commands.ReassignDistributorCommandHandler {
	return commands.NewReassignDistributorCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateEscalateOrdersCommandHandler() (commands.EscalateOrdersCommandHandler, error) {
	policy, err := services.NewEscalationPolicy(c.cfg.EscalationWindow)
	if err != nil {
		return commands.EscalateOrdersCommandHandler{}, err
	}
	return commands.NewEscalateOrdersCommandHandler(c.orderUoWFactory(), policy, c.clock, c.logger), nil
}

func (c *CompositionRoot) CreateApplyPartnerCommandHandler() commands.ApplyPartnerCommandHandler {
	return commands.NewApplyPartnerCommandHandler(c.partnerUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateReviewPartnerCommandHandler() commands.ReviewPartnerCommandHandler {
	return commands.NewReviewPartnerCommandHandler(c.partnerUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() commands.CreateProductCommandHandler {
	return commands.NewCreateProductCommandHandler(c.catalogUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateAdjustStockCommandHandler() commands.AdjustStockCommandHandler {
	return commands.NewAdjustStockCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateCreateSeminarCommandHandler() commands.CreateSeminarCommandHandler {
	return commands.NewCreateSeminarCommandHandler(c.seminarUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRegisterForSeminarCommandHandler() commands.RegisterForSeminarCommandHandler {
	return commands.NewRegisterForSeminarCommandHandler(c.seminarUoWFactory(), c.clock)
}

// HTTPHandlers wires every use case served by the HTTP adapter.
func (c *CompositionRoot) HTTPHandlers() (httpin.Handlers, error) {
	escalate, err := c.CreateEscalateOrdersCommandHandler()
	if err != nil {
		return httpin.Handlers{}, err
	}
	return httpin.Handlers{
		CreateOrder:         c.CreateCreateOrderCommandHandler(),
		ChangeOrderStatus:   c.CreateChangeOrderStatusCommandHandler(),
		ReassignDistributor: c.CreateReassignDistributorCommandHandler(),
		EscalateOrders:      escalate,
		ApplyPartner:        c.CreateApplyPartnerCommandHandler(),
		ReviewPartner:       c.CreateReviewPartnerCommandHandler(),
		CreateProduct:       c.CreateCreateProductCommandHandler(),
		AdjustStock:         c.CreateAdjustStockCommandHandler(),
		CreateSeminar:       c.CreateCreateSeminarCommandHandler(),
		RegisterForSeminar:  c.CreateRegisterForSeminarCommandHandler(),

		GetOrder:            queries.NewGetOrderQueryHandler(c.gormDB),
		ListOrders:          queries.NewListOrdersQueryHandler(c.gormDB),
		ListEscalatedOrders: queries.NewListEscalatedOrdersQueryHandler(c.gormDB),
		ListPartners:        queries.NewListPartnersQueryHandler(c.gormDB),
		GetProduct:          queries.NewGetProductQueryHandler(c.gormDB),
		ListProducts:        queries.NewListProductsQueryHandler(c.gormDB),
		GetSeminar:          queries.NewGetSeminarQueryHandler(c.gormDB),
	}, nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPartnerUoWFactory func() commands.PartnerUoW

func (f FuncPartnerUoWFactory) Create() commands.PartnerUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncSeminarUoWFactory func() commands.SeminarUoW

func (f FuncSeminarUoWFactory) Create() commands.SeminarUoW {
	return f()
}
