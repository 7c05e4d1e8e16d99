package commands

import (
	"context"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/seminar"
)

type CreateSeminarCommandHandler struct {
	uowFactory SeminarUoWFactory
	clock      kernel.Clock
}

func NewCreateSeminarCommandHandler(uowFactory SeminarUoWFactory, clock kernel.Clock) CreateSeminarCommandHandler {
	return CreateSeminarCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h CreateSeminarCommandHandler) Handle(ctx context.Context, cmd CreateSeminarCommand) (*seminar.Seminar, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := seminar.NewSeminar(kernel.NewUUID(), cmd.Title(), cmd.StartsAt(), cmd.Capacity(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.SeminarRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return aggregate, nil
}
