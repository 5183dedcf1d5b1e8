package ports

import (
	"context"

	"freight/internal/core/domain/model/deliverynote"
)

type DeliveryNoteRepository interface {
	// Add inserts the note with its items and vehicles.
	Add(ctx context.Context, aggregate *deliverynote.Note) error

	// Update writes status, dates and documents. Items are immutable.
	Update(ctx context.Context, aggregate *deliverynote.Note) error

	Get(ctx context.Context, id string) (*deliverynote.Note, error)

	// CountDeliveredBLs counts the distinct bill of lading numbers of the
	// job's clearance schedules referenced by any delivery note item.
	CountDeliveredBLs(ctx context.Context, jobID string) (int, error)
}
