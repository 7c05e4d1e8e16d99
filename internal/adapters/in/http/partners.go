package http

import (
	"context"
	"net/http"

	"medshop/internal/api"
	"medshop/internal/core/application/usecases/commands"
	"medshop/internal/core/application/usecases/queries"
	"medshop/internal/core/domain/model/partner"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ApplyPartner handles POST /api/v1/partners. New partners start pending.
func (s *Server) ApplyPartner(ctx echo.Context) error {
	var body api.NewPartner
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	cmd, err := commands.NewApplyPartnerCommand(body.Email, body.Name, body.Type, body.DiscountPercent, body.Regions)
	if err != nil {
		return err
	}

	aggregate, err := call(ctx.Request().Context(), s.retry, func(c context.Context) (*partner.Partner, error) {
		return s.h.ApplyPartner.Handle(c, cmd)
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, partnerFromDomain(aggregate))
}

// ListPartners handles GET /api/v1/partners.
func (s *Server) ListPartners(ctx echo.Context, params api.ListPartnersParams) error {
	var kind, status string
	if params.Type != nil {
		kind = *params.Type
	}
	if params.Status != nil {
		status = *params.Status
	}
	query, err := queries.NewListPartnersQuery(kind, status)
	if err != nil {
		return err
	}

	views, err := call(ctx.Request().Context(), s.retry, func(c context.Context) ([]queries.PartnerView, error) {
		return s.h.ListPartners.Handle(c, query)
	})
	if err != nil {
		return err
	}

	response := make([]api.Partner, len(views))
	for i, view := range views {
		response[i] = api.Partner{
			Id:              view.ID.Bytes(),
			Email:           view.Email,
			Name:            view.Name,
			Type:            view.Type,
			Status:          view.Status,
			DiscountPercent: view.Discount,
			Regions:         view.Regions,
			CreatedAt:       view.CreatedAt,
			UpdatedAt:       view.UpdatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// ReviewPartner handles PATCH /api/v1/partners/{partnerID}/status.
func (s *Server) ReviewPartner(ctx echo.Context, partnerID openapi_types.UUID) error {
	var body api.PartnerReview
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	cmd, err := commands.NewReviewPartnerCommand(partnerID.String(), body.Status, body.ActorRole)
	if err != nil {
		return err
	}

	aggregate, err := call(ctx.Request().Context(), s.retry, func(c context.Context) (*partner.Partner, error) {
		return s.h.ReviewPartner.Handle(c, cmd)
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, partnerFromDomain(aggregate))
}

func partnerFromDomain(p *partner.Partner) api.Partner {
	regions := make([]string, 0, len(p.Regions()))
	for _, r := range p.Regions() {
		regions = append(regions, r.String())
	}
	return api.Partner{
		Id:              p.ID().Bytes(),
		Email:           p.Email(),
		Name:            p.Name(),
		Type:            p.Type().String(),
		Status:          p.Status().String(),
		DiscountPercent: p.Discount(),
		Regions:         regions,
		CreatedAt:       p.CreatedAt(),
		UpdatedAt:       p.UpdatedAt(),
	}
}
