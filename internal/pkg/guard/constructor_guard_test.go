package guard_test

import (
	"errors"
	"testing"

	"freight/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("command not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

// TestConstructorGuardUsageExample shows the guard protecting a value object
// shaped like the voucher metadata used by payment batches.
func TestConstructorGuardUsageExample(t *testing.T) {
	type voucherMeta struct {
		method string
		guard  guard.ConstructorGuard
	}

	errNotConstructed := errors.New("voucherMeta must be created via newVoucherMeta")

	newVoucherMeta := func(method string) (voucherMeta, error) {
		if method == "" {
			return voucherMeta{}, errors.New("method is required")
		}
		return voucherMeta{method: method, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_validates", func(t *testing.T) {
		meta, err := newVoucherMeta("Bank Transfer")
		require.NoError(t, err)
		require.NoError(t, meta.guard.Validate(errNotConstructed))
		assert.Equal(t, "Bank Transfer", meta.method)
	})

	t.Run("zero_value_is_rejected", func(t *testing.T) {
		var meta voucherMeta
		assert.Equal(t, errNotConstructed, meta.guard.Validate(errNotConstructed))
	})

	t.Run("constructor_enforces_rules", func(t *testing.T) {
		_, err := newVoucherMeta("")
		require.EqualError(t, err, "method is required")
	})
}

func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	done := make(chan bool)
	for range 50 {
		go func() {
			for range 500 {
				assert.NoError(t, g.Validate(validationError))
			}
			done <- true
		}()
	}

	for range 50 {
		<-done
	}
}
