package http

import (
	"context"
	"errors"
	"net/http"

	"medshop/internal/api"
	"medshop/internal/core/application/usecases/commands"
	"medshop/internal/core/application/usecases/queries"
	"medshop/internal/core/domain/model/seminar"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// CreateSeminar handles POST /api/v1/seminars.
func (s *Server) CreateSeminar(ctx echo.Context) error {
	var body api.NewSeminar
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	cmd := commands.NewCreateSeminarCommand(body.Title, body.StartsAt, body.Capacity)

	aggregate, err := call(ctx.Request().Context(), s.retry, func(c context.Context) (*seminar.Seminar, error) {
		return s.h.CreateSeminar.Handle(c, cmd)
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, api.Seminar{
		Id:              aggregate.ID().Bytes(),
		Title:           aggregate.Title(),
		StartsAt:        aggregate.StartsAt(),
		Capacity:        aggregate.Capacity(),
		RegisteredCount: aggregate.RegisteredCount(),
		SeatsLeft:       aggregate.SeatsLeft(),
	})
}

// GetSeminar handles GET /api/v1/seminars/{seminarID}.
func (s *Server) GetSeminar(ctx echo.Context, seminarID openapi_types.UUID) error {
	query, err := queries.NewGetSeminarQuery(seminarID.String())
	if err != nil {
		return err
	}

	view, err := call(ctx.Request().Context(), s.retry, func(c context.Context) (queries.SeminarView, error) {
		return s.h.GetSeminar.Handle(c, query)
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.Seminar{
		Id:              view.ID.Bytes(),
		Title:           view.Title,
		StartsAt:        view.StartsAt,
		Capacity:        view.Capacity,
		RegisteredCount: view.RegisteredCount,
		SeatsLeft:       view.SeatsLeft,
	})
}

// RegisterForSeminar handles POST /api/v1/seminars/{seminarID}/registrations.
// A full seminar answers 409 and takes no registration.
func (s *Server) RegisterForSeminar(ctx echo.Context, seminarID openapi_types.UUID) error {
	var body api.NewRegistration
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	cmd, err := commands.NewRegisterForSeminarCommand(seminarID.String(), body.Name, body.Email)
	if err != nil {
		return err
	}

	registration, err := call(ctx.Request().Context(), s.retry, func(c context.Context) (seminar.Registration, error) {
		return s.h.RegisterForSeminar.Handle(c, cmd)
	})
	if err != nil {
		s.metrics.SeminarRegistrations.WithLabelValues(registrationOutcome(err)).Inc()
		return err
	}
	s.metrics.SeminarRegistrations.WithLabelValues("confirmed").Inc()

	return ctx.JSON(http.StatusCreated, api.RegistrationConfirmation{
		Token:     registration.Token().Bytes(),
		Confirmed: true,
	})
}

func registrationOutcome(err error) string {
	if errors.Is(err, seminar.ErrSeminarFull) {
		return "full"
	}
	return "error"
}
