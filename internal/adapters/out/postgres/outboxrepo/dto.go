package outboxrepo

import (
	"time"

	"freight/internal/core/domain/model/event"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EventDTO is a record waiting in the outbox. DispatchedAt stays nil until
// the audit sink and, for role-targeted records, the notifier accepted it.
type EventDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Actor        string     `gorm:"type:varchar(255);not null"`
	ActorRole    string     `gorm:"type:varchar(32)"`
	Action       string     `gorm:"type:varchar(64);not null"`
	EntityType   string     `gorm:"type:varchar(32);not null"`
	EntityID     string     `gorm:"type:varchar(64);not null"`
	Details      string     `gorm:"type:text"`
	Audience     string     `gorm:"type:varchar(32)"`
	OccurredAt   time.Time  `gorm:"not null;index:idx_outbox_pending,priority:2"`
	DispatchedAt *time.Time `gorm:"index:idx_outbox_pending,priority:1"`
	Attempts     int        `gorm:"type:int;not null;default:0"`
	LastError    string     `gorm:"type:text"`
}

func (EventDTO) TableName() string {
	return "outbox_events"
}

func fromDomain(r event.Record) EventDTO {
	return EventDTO{
		ID:         r.ID.Bytes(),
		Actor:      r.Actor,
		ActorRole:  string(r.ActorRole),
		Action:     string(r.Action),
		EntityType: string(r.EntityType),
		EntityID:   r.EntityID,
		Details:    r.Details,
		Audience:   string(r.Audience),
		OccurredAt: r.OccurredAt,
	}
}

func toDomain(dto EventDTO) (event.Record, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return event.Record{}, err
	}

	return event.Record{
		ID:         id,
		Actor:      dto.Actor,
		ActorRole:  kernel.Role(dto.ActorRole),
		Action:     event.Action(dto.Action),
		EntityType: event.EntityType(dto.EntityType),
		EntityID:   dto.EntityID,
		Details:    dto.Details,
		Audience:   kernel.Role(dto.Audience),
		OccurredAt: dto.OccurredAt,
	}, nil
}
