package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"medshop/internal/api"
	"medshop/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// badRequestError marks input the server could not read at all: malformed
// JSON or a body rejected by the OpenAPI schema.
type badRequestError struct {
	message string
	details []string
	cause   error
}

func (e *badRequestError) Error() string { return e.message }
func (e *badRequestError) Unwrap() error { return e.cause }

// NewErrorHandler maps use-case errors to status codes and the api.Error
// body. Validation failures carry one entry per violated rule.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http")
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body := toErrorBody(err)
		if body.Code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "Request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", body.Code,
				"error", err)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(body.Code)
		} else {
			writeErr = c.JSON(body.Code, body)
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "Failed to write error response", "error", writeErr)
		}
	}
}

func toErrorBody(err error) api.Error {
	var (
		badRequest  *badRequestError
		httpErr     *echo.HTTPError
		invalidBody validator.ValidationErrors
	)

	switch {
	case errors.As(err, &badRequest):
		return api.Error{Code: http.StatusBadRequest, Message: badRequest.message, Errors: badRequest.details}
	case errors.As(err, &invalidBody):
		details := make([]string, 0, len(invalidBody))
		for _, fe := range invalidBody {
			details = append(details, fieldMessage(fe))
		}
		return api.Error{Code: http.StatusUnprocessableEntity, Message: "Validation failed", Errors: details}
	case errs.IsValidation(err):
		return api.Error{Code: http.StatusUnprocessableEntity, Message: "Validation failed", Errors: flatten(err)}
	case errors.Is(err, errs.ErrObjectNotFound):
		return api.Error{Code: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, errs.ErrConflict):
		return api.Error{Code: http.StatusConflict, Message: err.Error()}
	case errors.Is(err, errs.ErrTransientStore), errors.Is(err, context.DeadlineExceeded):
		return api.Error{Code: http.StatusServiceUnavailable, Message: "Service is temporarily unavailable, retry later"}
	case errors.As(err, &httpErr):
		return api.Error{Code: httpErr.Code, Message: fmt.Sprint(httpErr.Message)}
	default:
		return api.Error{Code: http.StatusInternalServerError, Message: "Internal server error"}
	}
}

// flatten expands errors.Join trees into one message per leaf.
func flatten(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok && isJoin(err) {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []string{err.Error()}
}

// isJoin reports whether err came from errors.Join. Typed errors such as
// ConflictError also expose Unwrap() []error but are single failures.
func isJoin(err error) bool {
	switch err.(type) {
	case *errs.ConflictError, *errs.TransientStoreError:
		return false
	}
	return true
}

func fieldMessage(fe validator.FieldError) string {
	// Drop the body type name: "NewOrder.items[0].sku" -> "items[0].sku".
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s needs at least %s entries", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed the %s rule", field, fe.Tag())
	}
}
