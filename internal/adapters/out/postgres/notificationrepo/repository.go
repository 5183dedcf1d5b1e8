// Package notificationrepo broadcasts records to a role by storing one
// notification row per record. Clients poll their role's unread rows
// through the notifications query.
package notificationrepo

import (
	"context"
	"fmt"
	"time"

	"freight/internal/adapters/out/postgres/dberr"
	"freight/internal/core/domain/model/event"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const resource = "notification"

type NotificationDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Role       string     `gorm:"type:varchar(32);not null;index:idx_notification_inbox"`
	Action     string     `gorm:"type:varchar(64);not null"`
	EntityType string     `gorm:"type:varchar(32);not null"`
	EntityID   string     `gorm:"type:varchar(64);not null"`
	Message    string     `gorm:"type:text;not null"`
	CreatedAt  time.Time  `gorm:"not null"`
	ReadAt     *time.Time `gorm:"index:idx_notification_inbox"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Notify(ctx context.Context, record event.Record) error {
	if !record.IsNotification() {
		return errs.NewValueIsRequiredError("notification audience")
	}

	dto := NotificationDTO{
		ID:         record.ID.Bytes(),
		Role:       string(record.Audience),
		Action:     string(record.Action),
		EntityType: string(record.EntityType),
		EntityID:   record.EntityID,
		Message:    message(record),
		CreatedAt:  record.OccurredAt,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error
	return dberr.Translate(err, resource, record.ID.String())
}

func message(record event.Record) string {
	if record.Details == "" {
		return fmt.Sprintf("%s %s by %s", record.EntityID, record.Action, record.Actor)
	}
	return fmt.Sprintf("%s: %s", record.EntityID, record.Details)
}

// MarkRead marks a notification of role as read. A notification of another
// role is reported as not found.
func (r *GormNotificationRepository) MarkRead(ctx context.Context, role kernel.Role, id kernel.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("id = ? AND role = ?", id.Bytes(), string(role)).
		Update("read_at", at)
	if result.Error != nil {
		return dberr.Translate(result.Error, resource, id.String())
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(resource, id.String())
	}
	return nil
}
