package queries

import (
	"context"

	"freight/internal/adapters/out/postgres/dberr"

	"gorm.io/gorm"
)

type ListNotificationsQueryHandler struct {
	db *gorm.DB
}

func NewListNotificationsQueryHandler(db *gorm.DB) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{db: db}
}

func (h ListNotificationsQueryHandler) Handle(ctx context.Context, query ListNotificationsQuery) ([]NotificationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	result := make([]NotificationResponse, 0)
	err := h.db.WithContext(ctx).
		Table("notifications").
		Select("id, action, entity_type, entity_id, message, created_at").
		Where("role = ? AND read_at IS NULL", string(query.Role())).
		Order("created_at DESC, id").
		Limit(query.Limit()).
		Scan(&result).Error
	if err != nil {
		return nil, dberr.Translate(err, "notifications", string(query.Role()))
	}
	for i := range result {
		result[i].CreatedAt = result[i].CreatedAt.UTC()
	}
	return result, nil
}
