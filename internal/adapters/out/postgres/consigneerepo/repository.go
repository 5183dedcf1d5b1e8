package consigneerepo

import (
	"context"

	"freight/internal/adapters/out/postgres/dberr"
	"freight/internal/core/domain/model/consignee"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConsigneeDTO struct {
	Code string `gorm:"type:varchar(64);primaryKey"`
	Name string `gorm:"type:varchar(255);not null"`
}

func (ConsigneeDTO) TableName() string {
	return "consignees"
}

// GormConsigneeRepository reads the consignee directory. The directory is
// maintained outside this service; Upsert exists for seeding.
type GormConsigneeRepository struct {
	db *gorm.DB
}

func NewGormConsigneeRepository(db *gorm.DB) *GormConsigneeRepository {
	return &GormConsigneeRepository{db: db}
}

// List returns the directory ordered by code so fuzzy ties resolve the same
// way on every call.
func (r *GormConsigneeRepository) List(ctx context.Context) ([]consignee.Entry, error) {
	var dtos []ConsigneeDTO
	if err := r.db.WithContext(ctx).Order("code").Find(&dtos).Error; err != nil {
		return nil, dberr.Translate(err, "consignee directory", "")
	}

	entries := make([]consignee.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := consignee.NewEntry(dto.Code, dto.Name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *GormConsigneeRepository) Upsert(ctx context.Context, entries ...consignee.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	dtos := make([]ConsigneeDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, ConsigneeDTO{Code: e.Code(), Name: e.Name()})
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).
		Create(&dtos).Error
	return dberr.Translate(err, "consignee directory", dtos[0].Code)
}
