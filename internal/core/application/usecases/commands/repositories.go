// Package commands contains the business operations that modify order desk
// state. Each command is validated on construction and executed by its
// handler inside one unit of work.
package commands

import (
	"context"

	"medshop/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	PartnerRepoFactory interface {
		PartnerRepository() ports.PartnerRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	SeminarRepoFactory interface {
		SeminarRepository() ports.SeminarRepository
	}

	// CareNotifierFactory hands out a notifier bound to the transaction, so
	// customer care hears about a change only when it commits.
	CareNotifierFactory interface {
		CareNotifier() ports.CareNotifier
	}

	// OrderUoW covers the order lifecycle: intake, transitions, reassignment
	// and escalation.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, id)
	//   // ... mutate o
	//   err = uow.OrderRepository().Update(ctx, o)
	//   err = uow.CareNotifier().Notify(ctx, event)
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		PartnerRepoFactory
		CareNotifierFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	PartnerUoW interface {
		TxManager
		PartnerRepoFactory
	}

	PartnerUoWFactory interface {
		Create() PartnerUoW
	}

	CatalogUoW interface {
		TxManager
		ProductRepoFactory
	}

	CatalogUoWFactory interface {
		Create() CatalogUoW
	}

	SeminarUoW interface {
		TxManager
		SeminarRepoFactory
	}

	SeminarUoWFactory interface {
		Create() SeminarUoW
	}
)
