package kernel_test

import (
	"testing"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryProgress(t *testing.T) {
	testCases := []struct {
		name      string
		delivered int
		total     int
		expected  kernel.Progress
	}{
		{"nothing delivered", 0, 2, 0},
		{"half", 1, 2, 50},
		{"floors", 1, 3, 33},
		{"two of three", 2, 3, 66},
		{"all", 3, 3, 100},
		{"clamped above total", 5, 3, 100},
		{"clamped below zero", -1, 3, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := kernel.DeliveryProgress(tc.delivered, tc.total)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, p)
		})
	}

	t.Run("zero total rejected", func(t *testing.T) {
		_, err := kernel.DeliveryProgress(0, 0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestNewProgress_Bounds(t *testing.T) {
	_, err := kernel.NewProgress(101)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = kernel.NewProgress(-1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	p, err := kernel.NewProgress(100)
	require.NoError(t, err)
	assert.True(t, p.IsComplete())
}

func TestNewActor(t *testing.T) {
	actor, err := kernel.NewActor("  Dana  ", kernel.RoleAccounts)
	require.NoError(t, err)
	assert.Equal(t, "Dana", actor.Name())
	assert.Equal(t, kernel.RoleAccounts, actor.Role())

	_, err = kernel.NewActor("", kernel.RoleAccounts)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = kernel.NewActor("Dana", kernel.Role("Janitor"))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	role, err := kernel.ParseRole("clearance")
	require.NoError(t, err)
	assert.Equal(t, kernel.RoleClearance, role)
}
