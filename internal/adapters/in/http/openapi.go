package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"medshop/internal/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

// RequestValidatorMiddleware rejects requests that do not match the OpenAPI
// document with 400. Requests to paths the document does not describe pass
// through untouched.
func RequestValidatorMiddleware(swagger *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(swagger)
	if err != nil {
		return nil, err
	}
	options := &openapi3filter.Options{MultiError: true}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
					return next(c)
				}
				return err
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return &badRequestError{
					message: "Request does not match the API schema",
					details: schemaDetails(err),
					cause:   err,
				}
			}
			return next(c)
		}
	}, nil
}

func schemaDetails(err error) []string {
	var multi openapi3.MultiError
	if !errors.As(err, &multi) {
		return []string{err.Error()}
	}
	details := make([]string, 0, len(multi))
	for _, e := range multi {
		details = append(details, schemaDetails(e)...)
	}
	return details
}

// swaggerDoc serves the OpenAPI document to swag, which backs the swagger UI.
type swaggerDoc struct {
	doc string
}

func (d swaggerDoc) ReadDoc() string { return d.doc }

// RegisterSwaggerDoc publishes swagger as the default swag document, which
// echo-swagger serves at /swagger/doc.json.
func RegisterSwaggerDoc(swagger *openapi3.T) error {
	doc, err := json.Marshal(swagger)
	if err != nil {
		return err
	}
	if swag.GetSwagger(swag.Name) == nil {
		swag.Register(swag.Name, swaggerDoc{doc: string(doc)})
	}
	return nil
}

func serveRawSpec(c echo.Context) error {
	return c.Blob(http.StatusOK, "application/yaml", api.RawSpec())
}
