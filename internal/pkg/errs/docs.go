// Package errs provides standardized error types for the freight workflow service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: input validation
//   - ObjectNotFoundError: a referenced job, schedule, note or payment is missing
//   - ConflictError: a sequence identifier or unique key collided with a concurrent writer
//   - PreconditionFailedError: a batch contains entities that are not in the required state
//   - TransientIOError: the store is temporarily unavailable
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify errors with errors.Is against the sentinels, or errors.As to
// reach the details (for example the offending ids of a PreconditionFailedError).
package errs
