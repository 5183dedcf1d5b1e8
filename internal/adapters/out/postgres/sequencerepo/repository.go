// Package sequencerepo reads issued sequence identifiers straight from the
// tables that own them, so there is no counter row to drift out of step.
package sequencerepo

import (
	"context"
	"fmt"

	"freight/internal/adapters/out/postgres/dberr"
	"freight/internal/adapters/out/postgres/dialect"
	"freight/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type source struct {
	table  string
	column string
}

func sourceOf(scope kernel.SequenceScope) (source, error) {
	switch scope {
	case kernel.JobScope:
		return source{table: "jobs", column: "id"}, nil
	case kernel.DeliveryNoteScope:
		return source{table: "delivery_notes", column: "id"}, nil
	case kernel.VoucherScope:
		return source{table: "vouchers", column: "voucher_no"}, nil
	default:
		return source{}, scope.Validate()
	}
}

type GormSequenceRepository struct {
	db *gorm.DB
}

func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Lock holds a PostgreSQL advisory lock on prefix until the transaction
// ends. On SQLite the writer lock already serializes allocators.
func (r *GormSequenceRepository) Lock(ctx context.Context, prefix string) error {
	return dberr.Translate(dialect.AdvisoryXactLock(ctx, r.db, "sequence:"+prefix), "sequence", prefix)
}

func (r *GormSequenceRepository) ListIDs(ctx context.Context, scope kernel.SequenceScope, prefix string) ([]string, error) {
	src, err := sourceOf(scope)
	if err != nil {
		return nil, err
	}

	var ids []string
	err = r.db.WithContext(ctx).
		Table(src.table).
		Where(fmt.Sprintf("%s LIKE ?", src.column), prefix+"%").
		Pluck(src.column, &ids).Error
	if err != nil {
		return nil, dberr.Translate(err, "sequence", prefix)
	}
	return ids, nil
}
