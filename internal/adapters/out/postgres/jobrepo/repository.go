package jobrepo

import (
	"context"
	"errors"

	"freight/internal/adapters/out/postgres/dberr"
	"freight/internal/adapters/out/postgres/dialect"
	"freight/internal/core/domain/model/job"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

const resource = "job"

// GormJobRepository stores jobs with their bills of lading and containers.
// The children are written once on Add; Update touches the job row only.
type GormJobRepository struct {
	db *gorm.DB
}

func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

func (r *GormJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Translate(err, resource, dto.ID)
	}
	return nil
}

func (r *GormJobRepository) Update(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&JobDTO{}).Where("id = ?", dto.ID).Updates(changes(dto))
	if result.Error != nil {
		return dberr.Translate(result.Error, resource, dto.ID)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(resource, dto.ID)
	}
	return nil
}

func (r *GormJobRepository) Get(ctx context.Context, id string) (*job.Job, error) {
	return r.get(ctx, r.db, id)
}

func (r *GormJobRepository) GetForUpdate(ctx context.Context, id string) (*job.Job, error) {
	return r.get(ctx, dialect.ForUpdate(r.db), id)
}

func (r *GormJobRepository) get(ctx context.Context, db *gorm.DB, id string) (*job.Job, error) {
	var dto JobDTO
	err := withChildren(db.WithContext(ctx)).First(&dto, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(resource, id)
		}
		return nil, dberr.Translate(err, resource, id)
	}

	return toDomain(dto)
}

// GetMany locks the rows in id order, so two batches over overlapping jobs
// cannot deadlock, and returns them in the order requested.
func (r *GormJobRepository) GetMany(ctx context.Context, ids []string) ([]*job.Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var dtos []JobDTO
	err := withChildren(dialect.ForUpdate(r.db).WithContext(ctx)).
		Where("id IN ?", ids).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, dberr.Translate(err, resource, ids[0])
	}

	byID := make(map[string]*job.Job, len(dtos))
	for _, dto := range dtos {
		j, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		byID[dto.ID] = j
	}

	jobs := make([]*job.Job, 0, len(ids))
	for _, id := range ids {
		j, ok := byID[id]
		if !ok {
			return nil, errs.NewObjectNotFoundError(resource, id)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("BillsOfLading", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		Preload("Containers", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") })
}
