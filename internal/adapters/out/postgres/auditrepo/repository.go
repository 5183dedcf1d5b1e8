// Package auditrepo is the audit trail sink. Entries are keyed by the id of
// the outbox record they came from, so a redelivered record is stored once.
package auditrepo

import (
	"context"
	"time"

	"freight/internal/adapters/out/postgres/dberr"
	"freight/internal/core/domain/model/event"
	"freight/internal/pkg/clock"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AuditLogDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Actor      string    `gorm:"type:varchar(255);not null"`
	ActorRole  string    `gorm:"type:varchar(32)"`
	Action     string    `gorm:"type:varchar(64);not null;index"`
	EntityType string    `gorm:"type:varchar(32);not null;index:idx_audit_entity"`
	EntityID   string    `gorm:"type:varchar(64);not null;index:idx_audit_entity"`
	Details    string    `gorm:"type:text"`
	OccurredAt time.Time `gorm:"not null"`
	RecordedAt time.Time `gorm:"not null"`
}

func (AuditLogDTO) TableName() string {
	return "audit_logs"
}

type GormAuditRepository struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewGormAuditRepository(db *gorm.DB, clk clock.Clock) *GormAuditRepository {
	return &GormAuditRepository{db: db, clock: clk}
}

func (r *GormAuditRepository) Record(ctx context.Context, record event.Record) error {
	if err := record.ID.Validate(); err != nil {
		return err
	}

	dto := AuditLogDTO{
		ID:         record.ID.Bytes(),
		Actor:      record.Actor,
		ActorRole:  string(record.ActorRole),
		Action:     string(record.Action),
		EntityType: string(record.EntityType),
		EntityID:   record.EntityID,
		Details:    record.Details,
		OccurredAt: record.OccurredAt,
		RecordedAt: r.clock.Now(),
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error
	return dberr.Translate(err, "audit log", record.ID.String())
}
