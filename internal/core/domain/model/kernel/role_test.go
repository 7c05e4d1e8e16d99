package kernel_test

import (
	"testing"

	"medshop/internal/core/domain/model/kernel"
	"medshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	testCases := []struct {
		in       string
		expected kernel.Role
	}{
		{"admin", kernel.RoleAdmin},
		{" Distributor ", kernel.RoleDistributor},
		{"customer-care", kernel.RoleCustomerCare},
		{"customer_care", kernel.RoleCustomerCare},
		{"sales", kernel.RoleSales},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			r, err := kernel.ParseRole(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, r)
		})
	}

	t.Run("unknown role", func(t *testing.T) {
		_, err := kernel.ParseRole("root")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRole_Privileges(t *testing.T) {
	assert.True(t, kernel.RoleAdmin.IsPrivileged())
	assert.False(t, kernel.RoleCustomerCare.IsPrivileged())
	assert.False(t, kernel.RoleDistributor.IsPrivileged())

	assert.True(t, kernel.RoleAdmin.IsStaff())
	assert.True(t, kernel.RoleCustomerCare.IsStaff())
	assert.False(t, kernel.RoleMarketer.IsStaff())
}

func TestNewRegion(t *testing.T) {
	t.Run("normalizes spelling variants", func(t *testing.T) {
		for _, in := range []string{"Lagos", "  lagos ", "LAGOS State", "lagos   state"} {
			r, err := kernel.NewRegion(in)
			require.NoError(t, err, in)
			assert.Equal(t, kernel.Region("lagos"), r, in)
		}
	})

	t.Run("keeps multi word names", func(t *testing.T) {
		r, err := kernel.NewRegion("Cross  River State")
		require.NoError(t, err)
		assert.Equal(t, "cross river", r.String())
	})

	t.Run("a lone 'state' is kept", func(t *testing.T) {
		assert.Equal(t, "state", kernel.NormalizeRegion("State"))
	})

	t.Run("blank is rejected", func(t *testing.T) {
		_, err := kernel.NewRegion("   ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
