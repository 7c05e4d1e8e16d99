package order_test

import (
	"fmt"
	"testing"

	"medshop/internal/core/domain/model/order"
	"medshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	assert.Equal(t, 0, int(order.Unknown))
	assert.Equal(t, 1, int(order.Pending))
	assert.Equal(t, 6, int(order.Delivered))
	assert.Equal(t, 7, int(order.Cancelled))
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range order.Statuses() {
		require.NoError(t, s.Validate(), s.String())
	}

	for _, s := range []order.Status{order.Unknown, order.Status(-1), order.Status(8)} {
		t.Run(fmt.Sprintf("rejects %d", int(s)), func(t *testing.T) {
			err := s.Validate()
			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
			assert.Equal(t, "unknown", s.String())
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range order.Statuses() {
		parsed, err := order.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	parsed, err := order.ParseStatus(" Payment_Confirmed ")
	require.NoError(t, err)
	assert.Equal(t, order.PaymentConfirmed, parsed)

	_, err = order.ParseStatus("shipped")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("canonical steps are allowed", func(t *testing.T) {
		current := order.Pending
		for {
			next, ok := current.Next()
			if !ok {
				break
			}
			got, err := current.TransitionTo(next, false)
			require.NoError(t, err)
			assert.Equal(t, next, got)
			current = next
		}
		assert.Equal(t, order.Delivered, current)
	})

	t.Run("skipping forward is rejected without override", func(t *testing.T) {
		_, err := order.Pending.TransitionTo(order.Dispatched, false)
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), "pending -> dispatched")
	})

	t.Run("skipping forward is accepted with override", func(t *testing.T) {
		got, err := order.Pending.TransitionTo(order.Dispatched, true)
		require.NoError(t, err)
		assert.Equal(t, order.Dispatched, got)
	})

	t.Run("moving backwards needs override", func(t *testing.T) {
		_, err := order.Processing.TransitionTo(order.Acknowledged, false)
		require.ErrorIs(t, err, errs.ErrConflict)

		got, err := order.Processing.TransitionTo(order.Acknowledged, true)
		require.NoError(t, err)
		assert.Equal(t, order.Acknowledged, got)
	})

	t.Run("cancellation from every non-terminal state", func(t *testing.T) {
		for _, s := range []order.Status{order.Pending, order.Acknowledged, order.PaymentConfirmed, order.Processing, order.Dispatched} {
			got, err := s.TransitionTo(order.Cancelled, false)
			require.NoError(t, err, s.String())
			assert.Equal(t, order.Cancelled, got)
		}
	})

	t.Run("delivered orders cannot be cancelled", func(t *testing.T) {
		_, err := order.Delivered.TransitionTo(order.Cancelled, false)
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("cancelled orders are terminal", func(t *testing.T) {
		_, err := order.Cancelled.TransitionTo(order.Acknowledged, false)
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("same status is accepted", func(t *testing.T) {
		got, err := order.Acknowledged.TransitionTo(order.Acknowledged, false)
		require.NoError(t, err)
		assert.Equal(t, order.Acknowledged, got)
	})

	t.Run("invalid target is a validation error", func(t *testing.T) {
		_, err := order.Pending.TransitionTo(order.Unknown, true)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Dispatched.IsTerminal())
	_, ok := order.Delivered.Next()
	assert.False(t, ok)
}
