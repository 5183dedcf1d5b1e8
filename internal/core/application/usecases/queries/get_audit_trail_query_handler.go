package queries

import (
	"context"

	"freight/internal/adapters/out/postgres/dberr"

	"gorm.io/gorm"
)

type GetAuditTrailQueryHandler struct {
	db *gorm.DB
}

func NewGetAuditTrailQueryHandler(db *gorm.DB) GetAuditTrailQueryHandler {
	return GetAuditTrailQueryHandler{db: db}
}

// Handle returns an empty trail for a job nobody has touched yet, including
// one that does not exist.
func (h GetAuditTrailQueryHandler) Handle(ctx context.Context, query GetAuditTrailQuery) ([]AuditEntryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]AuditEntryResponse, 0)
	err := h.db.WithContext(ctx).
		Table("audit_logs").
		Select("actor, actor_role, action, details, occurred_at").
		Where("entity_type = ? AND entity_id = ?", "job", query.JobID().String()).
		Order("occurred_at, id").
		Scan(&entries).Error
	if err != nil {
		return nil, dberr.Translate(err, "audit trail", query.JobID().String())
	}
	for i := range entries {
		entries[i].OccurredAt = entries[i].OccurredAt.UTC()
	}
	return entries, nil
}
