package commands

import (
	"context"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/core/domain/model/seminar"
)

// RegisterForSeminarCommandHandler reserves a seat and records the
// registration in one transaction. The seat is taken by a conditional
// update, so concurrent registrations never exceed capacity.
type RegisterForSeminarCommandHandler struct {
	uowFactory SeminarUoWFactory
	clock      kernel.Clock
}

func NewRegisterForSeminarCommandHandler(uowFactory SeminarUoWFactory, clock kernel.Clock) RegisterForSeminarCommandHandler {
	return RegisterForSeminarCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h RegisterForSeminarCommandHandler) Handle(ctx context.Context, cmd RegisterForSeminarCommand) (seminar.Registration, error) {
	if err := cmd.Validate(); err != nil {
		return seminar.Registration{}, err
	}

	registration, err := seminar.NewRegistration(cmd.SeminarID(), cmd.Name(), cmd.Email(), h.clock.Now())
	if err != nil {
		return seminar.Registration{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return seminar.Registration{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.SeminarRepository()
	s, err := repo.Get(ctx, cmd.SeminarID())
	if err != nil {
		return seminar.Registration{}, err
	}

	// Reserve rejects a seminar already full when read; the store rechecks
	// capacity against concurrent registrations.
	if err = s.Reserve(); err != nil {
		return seminar.Registration{}, err
	}
	if err = repo.ReserveSeat(ctx, cmd.SeminarID()); err != nil {
		return seminar.Registration{}, err
	}

	if err = repo.AddRegistration(ctx, registration); err != nil {
		return seminar.Registration{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return seminar.Registration{}, err
	}
	return registration, nil
}
