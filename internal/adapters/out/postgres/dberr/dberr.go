// Package dberr translates store errors into the errs taxonomy in one place,
// so use cases can tell a lost sequence race or an unreachable database from
// a bug.
package dberr

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"

	"freight/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	uniqueViolation      = "23505"
	adminShutdown        = "57P01"
	connectionClass      = "08"
	sqliteUniqueFailure  = "UNIQUE constraint failed"
	sqliteDatabaseLocked = "database is locked"
	databaseClosed       = "sql: database is closed"
)

// Translate maps err for an operation on resource identified by key:
//   - unique violations become errs.ConflictError
//   - lost connections, shutdowns and a closed pool become errs.TransientIOError
//
// Anything else, including errors already in the taxonomy, is returned as is.
func Translate(err error, resource, key string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == uniqueViolation:
			return errs.NewConflictErrorWithCause(resource, key, err)
		case pgErr.Code == adminShutdown, strings.HasPrefix(pgErr.Code, connectionClass):
			return errs.NewTransientIOError(resource, err)
		}
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey), strings.Contains(err.Error(), sqliteUniqueFailure):
		return errs.NewConflictErrorWithCause(resource, key, err)
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, sql.ErrConnDone),
		pgconn.SafeToRetry(err), pgconn.Timeout(err),
		strings.Contains(err.Error(), sqliteDatabaseLocked), strings.Contains(err.Error(), databaseClosed):
		return errs.NewTransientIOError(resource, err)
	}
	return err
}
