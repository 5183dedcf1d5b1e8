package dberr_test

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"freight/internal/adapters/out/postgres/dberr"
	"freight/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"pg unique violation", &pgconn.PgError{Code: "23505", Message: "duplicate key"}, errs.ErrConflict},
		{"wrapped pg unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), errs.ErrConflict},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, errs.ErrConflict},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: delivery_notes.id (2067)"), errs.ErrConflict},
		{"pg connection failure", &pgconn.PgError{Code: "08006"}, errs.ErrTransientIO},
		{"pg admin shutdown", &pgconn.PgError{Code: "57P01"}, errs.ErrTransientIO},
		{"bad connection", driver.ErrBadConn, errs.ErrTransientIO},
		{"connection done", sql.ErrConnDone, errs.ErrTransientIO},
		{"closed pool", errors.New("sql: database is closed"), errs.ErrTransientIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dberr.Translate(tt.err, "delivery note", "DN-2025-03-001")
			assert.ErrorIs(t, got, tt.want)
		})
	}

	t.Run("other errors pass through", func(t *testing.T) {
		plain := &pgconn.PgError{Code: "23503"}
		assert.Same(t, plain, dberr.Translate(plain, "job", "SH-2025-001"))
		assert.NoError(t, dberr.Translate(nil, "job", "SH-2025-001"))
	})

	t.Run("conflict names the key", func(t *testing.T) {
		got := dberr.Translate(gorm.ErrDuplicatedKey, "voucher", "VH-2025-004")
		assert.Contains(t, got.Error(), "voucher VH-2025-004 already exists")
	})
}
