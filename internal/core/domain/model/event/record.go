// Package event defines the audit and notification records a use case queues
// in its transaction for delivery after commit.
package event

import (
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

type Action string

const (
	ActionJobRegistered          Action = "job.registered"
	ActionJobCompleted           Action = "job.completed"
	ActionClearanceScheduled     Action = "clearance.scheduled"
	ActionClearanceRescheduled   Action = "clearance.rescheduled"
	ActionDeliveryNoteCreated    Action = "delivery_note.created"
	ActionDeliveryNoteUpdated    Action = "delivery_note.updated"
	ActionPaymentAdded           Action = "payment.added"
	ActionPaymentsSentToAccounts Action = "payment.sent_to_accounts"
	ActionConfirmationRequested  Action = "payment.confirmation_requested"
	ActionPaymentsConfirmed      Action = "payment.confirmed"
	ActionPaymentsPaid           Action = "payment.paid"
	ActionPaymentsSettled        Action = "payment.settled"
)

type EntityType string

const (
	EntityJob          EntityType = "job"
	EntityDeliveryNote EntityType = "delivery_note"
	EntityPayment      EntityType = "payment"
	EntitySchedule     EntityType = "clearance_schedule"
)

// Record is one fire-and-forget audit entry. A record with an audience is
// also broadcast as a notification to that role.
type Record struct {
	ID         kernel.UUID
	Actor      string
	ActorRole  kernel.Role
	Action     Action
	EntityType EntityType
	EntityID   string
	Details    string
	Audience   kernel.Role
	OccurredAt time.Time
}

func NewRecord(actor kernel.Actor, action Action, entityType EntityType, entityID, details string, at time.Time) (Record, error) {
	if err := actor.Validate(); err != nil {
		return Record{}, err
	}
	if strings.TrimSpace(entityID) == "" {
		return Record{}, errs.NewValueIsRequiredError("event entity id")
	}
	return Record{
		ID:         kernel.NewUUID(),
		Actor:      actor.Name(),
		ActorRole:  actor.Role(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		OccurredAt: at,
	}, nil
}

// NotifyRole returns a copy of r addressed to role.
func (r Record) NotifyRole(role kernel.Role) Record {
	r.Audience = role
	return r
}

// IsNotification reports whether r targets a role.
func (r Record) IsNotification() bool {
	return r.Audience != ""
}
