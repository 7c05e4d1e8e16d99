package http

import (
	"context"
	"errors"
	"net/http"
	"testing"

	postgres_adapter "medshop/internal/adapters/out/postgres"
	"medshop/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestToErrorBody(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"required", errs.NewValueIsRequiredError("customer name"), http.StatusUnprocessableEntity},
		{"out of range", errs.NewValueIsOutOfRangeError("quantity", 0, 1, 1000), http.StatusUnprocessableEntity},
		{"not found", errs.NewObjectNotFoundError("order", "x"), http.StatusNotFound},
		{"conflict", errs.NewConflictError("order status"), http.StatusConflict},
		{"stale version", errs.NewVersionIsInvalidErrorWithCause("order version"), http.StatusConflict},
		{"transient", errs.NewTransientStoreError("update orders", context.Canceled), http.StatusServiceUnavailable},
		{"deadline", context.DeadlineExceeded, http.StatusServiceUnavailable},
		{"echo", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed},
		{"schema", &badRequestError{message: "bad"}, http.StatusBadRequest},
		{"column overflow", postgres_adapter.Classify("create orders", &pgconn.PgError{Code: "22003", Message: "numeric field overflow"}), http.StatusUnprocessableEntity},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, toErrorBody(tt.err).Code)
		})
	}
}

func TestToErrorBody_InternalErrorsAreNotLeaked(t *testing.T) {
	body := toErrorBody(errors.New("pq: password authentication failed"))

	assert.Equal(t, "Internal server error", body.Message)
}

func TestFlatten_ExpandsJoinedValidationErrors(t *testing.T) {
	err := errors.Join(
		errs.NewValueIsRequiredError("customer phone"),
		errors.Join(
			errs.NewValueIsRequiredError("customer address"),
			errs.NewValueIsRequiredError("customer state"),
		),
	)

	assert.Len(t, flatten(err), 3)
}

func TestFlatten_KeepsTypedErrorsWhole(t *testing.T) {
	err := errs.NewConflictErrorWithCause("seminar", errors.New("seminar is full"))

	assert.Equal(t, []string{err.Error()}, flatten(err))
}
