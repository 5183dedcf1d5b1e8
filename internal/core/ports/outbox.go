package ports

import (
	"context"
	"time"

	"freight/internal/core/domain/model/event"
	"freight/internal/core/domain/model/kernel"
)

// OutboxRepository queues event records inside the use case transaction.
type OutboxRepository interface {
	Append(ctx context.Context, records ...event.Record) error

	// ListPending returns undelivered records created before olderThan with
	// fewer than maxAttempts failed deliveries, oldest first.
	ListPending(ctx context.Context, olderThan time.Time, maxAttempts, limit int) ([]event.Record, error)

	MarkDispatched(ctx context.Context, id kernel.UUID, at time.Time) error

	// MarkFailed increments the attempt counter and stores the last error.
	MarkFailed(ctx context.Context, id kernel.UUID, reason string) error
}

// AuditSink stores an audit trail entry.
type AuditSink interface {
	Record(ctx context.Context, record event.Record) error
}

// Notifier broadcasts a record to its audience role.
type Notifier interface {
	Notify(ctx context.Context, record event.Record) error
}

// EventDispatcher delivers committed records. Delivery failures are logged
// by the dispatcher and never returned to the caller.
type EventDispatcher interface {
	Dispatch(ctx context.Context, records []event.Record)
}

// NotificationInbox tracks which notifications a role has seen.
type NotificationInbox interface {
	MarkRead(ctx context.Context, role kernel.Role, id kernel.UUID, at time.Time) error
}
