package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("jobId", "SH-2025-001")

		assert.Equal(t, "jobId", err.ParamName)
		assert.Equal(t, "SH-2025-001", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: SH-2025-001", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("jobId", "SH-2025-001", cause)

		assert.Equal(t, "jobId", err.ParamName)
		assert.Equal(t, "SH-2025-001", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: jobId, ID is: SH-2025-001 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("paymentId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("blNumber")

		assert.Equal(t, "blNumber", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: blNumber", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("blNumber", cause)

		assert.Equal(t, "blNumber", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: blNumber (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("progress", 150, 0, 100)

		assert.Equal(t, "progress", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is progress, min value is 0, max value is 100", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("progress", -5, 0, 100, cause)

		assert.Equal(t, "progress", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is progress, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("customerName")

		assert.Equal(t, "customerName", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: customerName", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("customerName", cause)

		assert.Equal(t, "customerName", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: customerName (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestConflictError(t *testing.T) {
	t.Run("NewConflictError", func(t *testing.T) {
		err := errs.NewConflictError("delivery_note", "DN-2025-03-004")

		assert.Equal(t, "delivery_note", err.Resource)
		assert.Equal(t, "DN-2025-03-004", err.Key)
		require.NoError(t, err.Cause)
		assert.Equal(t, "conflict: delivery_note DN-2025-03-004 already exists", err.Error())
		assert.Equal(t, errs.ErrConflict, err.Unwrap())
	})

	t.Run("NewConflictErrorWithCause", func(t *testing.T) {
		cause := errors.New("duplicate key value violates unique constraint")
		err := errs.NewConflictErrorWithCause("job", "SH-2025-001", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"conflict: job SH-2025-001 already exists (cause: duplicate key value violates unique constraint)",
			err.Error())
	})
}

func TestPreconditionFailedError(t *testing.T) {
	t.Run("with offending ids", func(t *testing.T) {
		err := errs.NewPreconditionFailedError("jobs are not fully cleared", "SH-2025-002", "SH-2025-007")

		assert.Equal(t, []string{"SH-2025-002", "SH-2025-007"}, err.IDs)
		assert.Equal(t,
			"precondition failed: jobs are not fully cleared: SH-2025-002, SH-2025-007",
			err.Error())
		assert.Equal(t, errs.ErrPreconditionFailed, err.Unwrap())
	})

	t.Run("without ids", func(t *testing.T) {
		err := errs.NewPreconditionFailedError("note already delivered")
		assert.Equal(t, "precondition failed: note already delivered", err.Error())
	})
}

func TestTransientIOError(t *testing.T) {
	cause := errors.New("connection refused")
	err := errs.NewTransientIOError("create delivery note", cause)

	assert.Equal(t, "transient io error: create delivery note (cause: connection refused)", err.Error())
	assert.Equal(t, errs.ErrTransientIO, err.Unwrap())
}

func TestIsValidation(t *testing.T) {
	assert.True(t, errs.IsValidation(errs.NewValueIsRequiredError("items")))
	assert.True(t, errs.IsValidation(errs.NewValueIsInvalidError("status")))
	assert.True(t, errs.IsValidation(errs.NewValueIsOutOfRangeError("progress", 120, 0, 100)))
	assert.False(t, errs.IsValidation(errs.NewConflictError("job", "SH-2025-001")))
	assert.False(t, errs.IsValidation(errors.New("plain")))
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrConflict)
		require.Error(t, errs.ErrPreconditionFailed)
		require.Error(t, errs.ErrTransientIO)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "conflict", errs.ErrConflict.Error())
		assert.Equal(t, "precondition failed", errs.ErrPreconditionFailed.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("jobId", "SH-2025-001")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("blNumber")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("progress", 150, 0, 100)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("customerName")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)

		conflictErr := fmt.Errorf("allocate: %w", errs.NewConflictError("voucher", "VH-2025-010"))
		require.ErrorIs(t, conflictErr, errs.ErrConflict)

		var precondition *errs.PreconditionFailedError
		wrapped := fmt.Errorf("send to accounts: %w", errs.NewPreconditionFailedError("not cleared", "SH-2025-004"))
		require.ErrorAs(t, wrapped, &precondition)
		assert.Equal(t, []string{"SH-2025-004"}, precondition.IDs)
	})
}
