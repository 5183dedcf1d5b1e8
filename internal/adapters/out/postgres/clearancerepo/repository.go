package clearancerepo

import (
	"context"
	"errors"
	"time"

	"freight/internal/adapters/out/postgres/dberr"
	"freight/internal/adapters/out/postgres/dialect"
	"freight/internal/core/domain/model/clearance"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const resource = "clearance schedule"

type GormClearanceRepository struct {
	db *gorm.DB
}

func NewGormClearanceRepository(db *gorm.DB) *GormClearanceRepository {
	return &GormClearanceRepository{db: db}
}

func (r *GormClearanceRepository) Add(ctx context.Context, aggregate *clearance.Schedule) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Translate(err, resource, aggregate.Key())
	}
	return nil
}

func (r *GormClearanceRepository) Update(ctx context.Context, aggregate *clearance.Schedule) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ScheduleDTO{}).Where("id = ?", dto.ID).Updates(changes(dto))
	if result.Error != nil {
		return dberr.Translate(result.Error, resource, aggregate.Key())
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(resource, aggregate.ID().String())
	}
	return nil
}

func (r *GormClearanceRepository) Get(ctx context.Context, id kernel.UUID) (*clearance.Schedule, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ScheduleDTO
	if err := dialect.ForUpdate(r.db).WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(resource, id.String())
		}
		return nil, dberr.Translate(err, resource, id.String())
	}

	return toDomain(dto)
}

func (r *GormClearanceRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*clearance.Schedule, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []ScheduleDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, dberr.Translate(err, resource, ids[0].String())
	}

	byID := make(map[uuid.UUID]*clearance.Schedule, len(dtos))
	for _, dto := range dtos {
		s, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		byID[dto.ID] = s
	}

	schedules := make([]*clearance.Schedule, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id.Bytes()]
		if !ok {
			return nil, errs.NewObjectNotFoundError(resource, id.String())
		}
		schedules = append(schedules, s)
	}
	return schedules, nil
}

func (r *GormClearanceRepository) ExistsOnDay(
	ctx context.Context,
	jobID, blNumber string,
	day time.Time,
	exclude *kernel.UUID,
) (bool, error) {
	query := r.db.WithContext(ctx).Model(&ScheduleDTO{}).
		Where("job_id = ? AND bl_number = ? AND planned_date = ?", jobID, blNumber, clearance.Day(day))
	if exclude != nil {
		query = query.Where("id <> ?", exclude.Bytes())
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, dberr.Translate(err, resource, jobID)
	}
	return count > 0, nil
}

func (r *GormClearanceRepository) IsDelivered(ctx context.Context, id kernel.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("delivery_note_items").
		Where("schedule_id = ?", id.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, dberr.Translate(err, resource, id.String())
	}
	return count > 0, nil
}
