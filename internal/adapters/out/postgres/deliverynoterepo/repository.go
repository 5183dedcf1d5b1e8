package deliverynoterepo

import (
	"context"
	"errors"

	"freight/internal/adapters/out/postgres/dberr"
	"freight/internal/core/domain/model/deliverynote"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

const resource = "delivery note"

type GormDeliveryNoteRepository struct {
	db *gorm.DB
}

func NewGormDeliveryNoteRepository(db *gorm.DB) *GormDeliveryNoteRepository {
	return &GormDeliveryNoteRepository{db: db}
}

// Add writes the note with its items and vehicles. A note number taken by a
// concurrent writer surfaces as errs.ConflictError.
func (r *GormDeliveryNoteRepository) Add(ctx context.Context, aggregate *deliverynote.Note) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Translate(err, resource, dto.ID)
	}
	return nil
}

func (r *GormDeliveryNoteRepository) Update(ctx context.Context, aggregate *deliverynote.Note) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&NoteDTO{}).Where("id = ?", dto.ID).Updates(changes(dto))
	if result.Error != nil {
		return dberr.Translate(result.Error, resource, dto.ID)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(resource, dto.ID)
	}
	return nil
}

func (r *GormDeliveryNoteRepository) Get(ctx context.Context, id string) (*deliverynote.Note, error) {
	var dto NoteDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		Preload("Vehicles", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		First(&dto, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(resource, id)
		}
		return nil, dberr.Translate(err, resource, id)
	}

	return toDomain(dto)
}

// CountDeliveredBLs counts a bill of lading once however many notes carry it.
func (r *GormDeliveryNoteRepository) CountDeliveredBLs(ctx context.Context, jobID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("delivery_note_items AS i").
		Joins("JOIN clearance_schedules AS s ON s.id = i.schedule_id").
		Where("s.job_id = ?", jobID).
		Distinct("s.bl_number").
		Count(&count).Error
	if err != nil {
		return 0, dberr.Translate(err, resource, jobID)
	}
	return int(count), nil
}
