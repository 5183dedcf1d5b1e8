// Package dialect hides the few statements that differ between PostgreSQL
// and the SQLite store used in tests.
package dialect

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const postgresName = "postgres"

func IsPostgres(db *gorm.DB) bool {
	return db.Dialector != nil && db.Dialector.Name() == postgresName
}

// ForUpdate adds a row lock to the query on PostgreSQL. SQLite serializes
// writers on the whole database and has no row locks.
func ForUpdate(db *gorm.DB) *gorm.DB {
	if !IsPostgres(db) {
		return db
	}
	return db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
}

// AdvisoryXactLock takes a transaction scoped advisory lock on key.
func AdvisoryXactLock(ctx context.Context, db *gorm.DB, key string) error {
	if !IsPostgres(db) {
		return nil
	}
	return db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error
}
