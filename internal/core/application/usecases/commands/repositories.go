// Package commands contains the use cases that change state. Every handler
// validates its command, runs one store transaction through a unit of work,
// queues its audit and notification records in the outbox within that
// transaction, and hands them to the dispatcher after commit.
package commands

import (
	"context"

	"freight/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	JobRepoFactory interface {
		JobRepository() ports.JobRepository
	}

	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	DeliveryNoteRepoFactory interface {
		DeliveryNoteRepository() ports.DeliveryNoteRepository
	}

	ClearanceRepoFactory interface {
		ClearanceRepository() ports.ClearanceRepository
	}

	SequenceRepoFactory interface {
		SequenceRepository() ports.SequenceRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// UoW spans every aggregate a workflow touches in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   notes := uow.DeliveryNoteRepository()
	//   jobs := uow.JobRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		JobRepoFactory
		PaymentRepoFactory
		DeliveryNoteRepoFactory
		ClearanceRepoFactory
		SequenceRepoFactory
		OutboxRepoFactory
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)
