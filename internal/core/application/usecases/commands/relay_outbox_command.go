package commands

import (
	"errors"
	"time"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrRelayOutboxCommandIsNotConstructed = errors.New(
	"RelayOutboxCommand must be created via NewRelayOutboxCommand constructor",
)

// RelayOutboxCommand picks up records the post-commit dispatch did not
// deliver. Records younger than gracePeriod are left to that dispatch.
type RelayOutboxCommand struct {
	gracePeriod time.Duration
	maxAttempts int
	limit       int

	guard guard.ConstructorGuard
}

func NewRelayOutboxCommand(gracePeriod time.Duration, maxAttempts, limit int) (RelayOutboxCommand, error) {
	if gracePeriod < 0 {
		return RelayOutboxCommand{}, errs.NewValueIsOutOfRangeError("grace period", gracePeriod, 0, "unbounded")
	}
	if maxAttempts < 1 {
		return RelayOutboxCommand{}, errs.NewValueIsOutOfRangeError("max attempts", maxAttempts, 1, "unbounded")
	}
	if limit < 1 {
		return RelayOutboxCommand{}, errs.NewValueIsOutOfRangeError("batch size", limit, 1, "unbounded")
	}
	return RelayOutboxCommand{
		gracePeriod: gracePeriod,
		maxAttempts: maxAttempts,
		limit:       limit,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}

func (c RelayOutboxCommand) GracePeriod() time.Duration { return c.gracePeriod }
func (c RelayOutboxCommand) MaxAttempts() int           { return c.maxAttempts }
func (c RelayOutboxCommand) Limit() int                 { return c.limit }
