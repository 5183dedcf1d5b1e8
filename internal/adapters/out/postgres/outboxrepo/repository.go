package outboxrepo

import (
	"context"
	"time"

	"freight/internal/adapters/out/postgres/dberr"
	"freight/internal/core/domain/model/event"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

const resource = "outbox event"

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Append(ctx context.Context, records ...event.Record) error {
	if len(records) == 0 {
		return nil
	}

	dtos := make([]EventDTO, 0, len(records))
	for _, rec := range records {
		if err := rec.ID.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(rec))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return dberr.Translate(err, resource, dtos[0].ID.String())
	}
	return nil
}

func (r *GormOutboxRepository) ListPending(ctx context.Context, olderThan time.Time, maxAttempts, limit int) ([]event.Record, error) {
	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("dispatched_at IS NULL").
		Where("occurred_at < ?", olderThan).
		Where("attempts < ?", maxAttempts).
		Order("occurred_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, dberr.Translate(err, resource, "pending")
	}

	records := make([]event.Record, 0, len(dtos))
	for _, dto := range dtos {
		rec, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *GormOutboxRepository) MarkDispatched(ctx context.Context, id kernel.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&EventDTO{}).
		Where("id = ?", id.Bytes()).
		Update("dispatched_at", at)
	if result.Error != nil {
		return dberr.Translate(result.Error, resource, id.String())
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(resource, id.String())
	}
	return nil
}

func (r *GormOutboxRepository) MarkFailed(ctx context.Context, id kernel.UUID, reason string) error {
	result := r.db.WithContext(ctx).Model(&EventDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": reason,
		})
	if result.Error != nil {
		return dberr.Translate(result.Error, resource, id.String())
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(resource, id.String())
	}
	return nil
}
