// Package api holds the HTTP contract of the order desk: the embedded
// OpenAPI document, request and response bodies, and the echo wrapper that
// binds path and query parameters before calling a ServerInterface.
package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// (GET /api/v1/orders/{orderRef})
	GetOrder(ctx echo.Context, orderRef string) error
	// (PATCH /api/v1/orders/{orderRef}/status)
	UpdateOrderStatus(ctx echo.Context, orderRef string) error
	// (PUT /api/v1/orders/{orderRef}/distributor)
	ReassignDistributor(ctx echo.Context, orderRef string) error
	// (GET /api/v1/escalations)
	ListEscalations(ctx echo.Context) error
	// (POST /api/v1/escalations/sweep)
	SweepEscalations(ctx echo.Context) error
	// (POST /api/v1/partners)
	ApplyPartner(ctx echo.Context) error
	// (GET /api/v1/partners)
	ListPartners(ctx echo.Context, params ListPartnersParams) error
	// (PATCH /api/v1/partners/{partnerID}/status)
	ReviewPartner(ctx echo.Context, partnerID openapi_types.UUID) error
	// (POST /api/v1/products)
	CreateProduct(ctx echo.Context) error
	// (GET /api/v1/products)
	ListProducts(ctx echo.Context) error
	// (GET /api/v1/products/{key})
	GetProduct(ctx echo.Context, key string, params GetProductParams) error
	// (PATCH /api/v1/products/{key}/stock)
	AdjustStock(ctx echo.Context, key string) error
	// (POST /api/v1/seminars)
	CreateSeminar(ctx echo.Context) error
	// (GET /api/v1/seminars/{seminarID})
	GetSeminar(ctx echo.Context, seminarID openapi_types.UUID) error
	// (POST /api/v1/seminars/{seminarID}/registrations)
	RegisterForSeminar(ctx echo.Context, seminarID openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func pathParam(ctx echo.Context, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

func queryParam(ctx echo.Context, name string, dest any) error {
	err := runtime.BindQueryParameter("form", true, false, name, ctx.QueryParams(), dest)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams
	if err := queryParam(ctx, "distributor_id", &params.DistributorId); err != nil {
		return err
	}
	if err := queryParam(ctx, "status", &params.Status); err != nil {
		return err
	}
	if err := queryParam(ctx, "from", &params.From); err != nil {
		return err
	}
	if err := queryParam(ctx, "to", &params.To); err != nil {
		return err
	}
	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var orderRef string
	if err := pathParam(ctx, "orderRef", &orderRef); err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderRef)
}

func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	var orderRef string
	if err := pathParam(ctx, "orderRef", &orderRef); err != nil {
		return err
	}
	return w.Handler.UpdateOrderStatus(ctx, orderRef)
}

func (w *ServerInterfaceWrapper) ReassignDistributor(ctx echo.Context) error {
	var orderRef string
	if err := pathParam(ctx, "orderRef", &orderRef); err != nil {
		return err
	}
	return w.Handler.ReassignDistributor(ctx, orderRef)
}

func (w *ServerInterfaceWrapper) ListEscalations(ctx echo.Context) error {
	return w.Handler.ListEscalations(ctx)
}

func (w *ServerInterfaceWrapper) SweepEscalations(ctx echo.Context) error {
	return w.Handler.SweepEscalations(ctx)
}

func (w *ServerInterfaceWrapper) ApplyPartner(ctx echo.Context) error {
	return w.Handler.ApplyPartner(ctx)
}

func (w *ServerInterfaceWrapper) ListPartners(ctx echo.Context) error {
	var params ListPartnersParams
	if err := queryParam(ctx, "type", &params.Type); err != nil {
		return err
	}
	if err := queryParam(ctx, "status", &params.Status); err != nil {
		return err
	}
	return w.Handler.ListPartners(ctx, params)
}

func (w *ServerInterfaceWrapper) ReviewPartner(ctx echo.Context) error {
	var partnerID openapi_types.UUID
	if err := pathParam(ctx, "partnerID", &partnerID); err != nil {
		return err
	}
	return w.Handler.ReviewPartner(ctx, partnerID)
}

func (w *ServerInterfaceWrapper) CreateProduct(ctx echo.Context) error {
	return w.Handler.CreateProduct(ctx)
}

func (w *ServerInterfaceWrapper) ListProducts(ctx echo.Context) error {
	return w.Handler.ListProducts(ctx)
}

func (w *ServerInterfaceWrapper) GetProduct(ctx echo.Context) error {
	var key string
	if err := pathParam(ctx, "key", &key); err != nil {
		return err
	}
	var params GetProductParams
	if err := queryParam(ctx, "tier", &params.Tier); err != nil {
		return err
	}
	return w.Handler.GetProduct(ctx, key, params)
}

func (w *ServerInterfaceWrapper) AdjustStock(ctx echo.Context) error {
	var key string
	if err := pathParam(ctx, "key", &key); err != nil {
		return err
	}
	return w.Handler.AdjustStock(ctx, key)
}

func (w *ServerInterfaceWrapper) CreateSeminar(ctx echo.Context) error {
	return w.Handler.CreateSeminar(ctx)
}

func (w *ServerInterfaceWrapper) GetSeminar(ctx echo.Context) error {
	var seminarID openapi_types.UUID
	if err := pathParam(ctx, "seminarID", &seminarID); err != nil {
		return err
	}
	return w.Handler.GetSeminar(ctx, seminarID)
}

func (w *ServerInterfaceWrapper) RegisterForSeminar(ctx echo.Context) error {
	var seminarID openapi_types.UUID
	if err := pathParam(ctx, "seminarID", &seminarID); err != nil {
		return err
	}
	return w.Handler.RegisterForSeminar(ctx, seminarID)
}

// EchoRouter is the subset of echo routing used by RegisterHandlers; both
// *echo.Echo and *echo.Group satisfy it.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL, which is
// prepended to the /api/v1 paths of the document.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders", wrapper.ListOrders)
	router.GET(baseURL+"/api/v1/orders/:orderRef", wrapper.GetOrder)
	router.PATCH(baseURL+"/api/v1/orders/:orderRef/status", wrapper.UpdateOrderStatus)
	router.PUT(baseURL+"/api/v1/orders/:orderRef/distributor", wrapper.ReassignDistributor)
	router.GET(baseURL+"/api/v1/escalations", wrapper.ListEscalations)
	router.POST(baseURL+"/api/v1/escalations/sweep", wrapper.SweepEscalations)
	router.POST(baseURL+"/api/v1/partners", wrapper.ApplyPartner)
	router.GET(baseURL+"/api/v1/partners", wrapper.ListPartners)
	router.PATCH(baseURL+"/api/v1/partners/:partnerID/status", wrapper.ReviewPartner)
	router.POST(baseURL+"/api/v1/products", wrapper.CreateProduct)
	router.GET(baseURL+"/api/v1/products", wrapper.ListProducts)
	router.GET(baseURL+"/api/v1/products/:key", wrapper.GetProduct)
	router.PATCH(baseURL+"/api/v1/products/:key/stock", wrapper.AdjustStock)
	router.POST(baseURL+"/api/v1/seminars", wrapper.CreateSeminar)
	router.GET(baseURL+"/api/v1/seminars/:seminarID", wrapper.GetSeminar)
	router.POST(baseURL+"/api/v1/seminars/:seminarID/registrations", wrapper.RegisterForSeminar)
}
