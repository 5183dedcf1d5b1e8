package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"freight/internal/core/domain/model/event"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

// conflictRetryDelay is the pause before the single retry of a transaction
// that lost a sequence race.
const conflictRetryDelay = 20 * time.Millisecond

// inTransaction runs fn in a fresh unit of work. The records fn returns are
// appended to the outbox before commit.
func inTransaction(ctx context.Context, factory UoWFactory, fn func(uow UoW) ([]event.Record, error)) ([]event.Record, error) {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	records, err := fn(uow)
	if err != nil {
		return nil, err
	}

	if len(records) > 0 {
		if err = uow.OutboxRepository().Append(ctx, records...); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return records, nil
}

// retryOnConflict runs attempt once more when it fails with errs.ConflictError.
// Each attempt must open its own transaction. Other errors are returned at once.
func retryOnConflict(ctx context.Context, logger *slog.Logger, operation string, attempt func() error) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(conflictRetryDelay), 1),
		ctx,
	)

	return backoff.RetryNotify(
		func() error {
			err := attempt()
			if err == nil || errors.Is(err, errs.ErrConflict) {
				return err
			}
			return backoff.Permanent(err)
		},
		policy,
		func(err error, _ time.Duration) {
			logger.WarnContext(ctx, "retrying after conflict", "operation", operation, "error", err)
		},
	)
}

// dispatch hands committed records to the dispatcher. The request context may
// already be cancelled by the time delivery runs.
func dispatch(ctx context.Context, dispatcher ports.EventDispatcher, records []event.Record) {
	if dispatcher == nil || len(records) == 0 {
		return
	}
	dispatcher.Dispatch(context.WithoutCancel(ctx), records)
}
