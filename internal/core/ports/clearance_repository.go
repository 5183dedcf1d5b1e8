package ports

import (
	"context"
	"time"

	"freight/internal/core/domain/model/clearance"
	"freight/internal/core/domain/model/kernel"
)

type ClearanceRepository interface {
	// Add inserts a schedule. A schedule for the same job, bill of lading and
	// day is reported as errs.ConflictError.
	Add(ctx context.Context, aggregate *clearance.Schedule) error
	Update(ctx context.Context, aggregate *clearance.Schedule) error

	Get(ctx context.Context, id kernel.UUID) (*clearance.Schedule, error)
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*clearance.Schedule, error)

	// ExistsOnDay reports whether another schedule than exclude occupies the
	// job, bill of lading and day.
	ExistsOnDay(ctx context.Context, jobID, blNumber string, day time.Time, exclude *kernel.UUID) (bool, error)

	// IsDelivered reports whether any delivery note item references the schedule.
	IsDelivered(ctx context.Context, id kernel.UUID) (bool, error)
}
