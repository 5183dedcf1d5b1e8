// Package ports defines the contracts between the freight core and its
// infrastructure: repositories bound to a transaction, the unit of work that
// owns that transaction, and the post-commit audit and notification sinks.
package ports

import (
	"context"

	"freight/internal/core/domain/model/job"
)

// JobRepository persists Job aggregates with their bills of lading and containers.
type JobRepository interface {
	// Add inserts a new job. A duplicate id is reported as errs.ConflictError.
	Add(ctx context.Context, aggregate *job.Job) error

	// Update writes status, progress, timestamps and counterparts.
	Update(ctx context.Context, aggregate *job.Job) error

	// Get returns errs.ObjectNotFoundError for an unknown id.
	Get(ctx context.Context, id string) (*job.Job, error)

	// GetForUpdate is Get with the row locked until the transaction ends,
	// so concurrent reconcilers of one job serialize.
	GetForUpdate(ctx context.Context, id string) (*job.Job, error)

	// GetMany returns the jobs in the order of ids. Any unknown id fails the
	// whole call with errs.ObjectNotFoundError.
	GetMany(ctx context.Context, ids []string) ([]*job.Job, error)
}
