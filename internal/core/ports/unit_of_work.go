package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per use case invocation.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one store transaction. Repositories obtained after Begin are
// bound to it.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails when no transaction is active.
	Commit(ctx context.Context) error

	// Rollback is safe to defer; after Commit it returns an error
	// and changes nothing.
	Rollback(ctx context.Context) error

	JobRepository() JobRepository
	PaymentRepository() PaymentRepository
	DeliveryNoteRepository() DeliveryNoteRepository
	ClearanceRepository() ClearanceRepository
	SequenceRepository() SequenceRepository
	OutboxRepository() OutboxRepository
}
