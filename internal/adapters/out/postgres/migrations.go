package postgres

import (
	"context"

	"freight/internal/adapters/out/postgres/auditrepo"
	"freight/internal/adapters/out/postgres/clearancerepo"
	"freight/internal/adapters/out/postgres/consigneerepo"
	"freight/internal/adapters/out/postgres/deliverynoterepo"
	"freight/internal/adapters/out/postgres/jobrepo"
	"freight/internal/adapters/out/postgres/notificationrepo"
	"freight/internal/adapters/out/postgres/outboxrepo"
	"freight/internal/adapters/out/postgres/paymentrepo"

	"gorm.io/gorm"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&jobrepo.JobDTO{},
		&jobrepo.BillOfLadingDTO{},
		&jobrepo.ContainerDTO{},
		&clearancerepo.ScheduleDTO{},
		&deliverynoterepo.NoteDTO{},
		&deliverynoterepo.ItemDTO{},
		&deliverynoterepo.VehicleDTO{},
		&paymentrepo.VoucherDTO{},
		&paymentrepo.PaymentDTO{},
		&consigneerepo.ConsigneeDTO{},
		&outboxrepo.EventDTO{},
		&auditrepo.AuditLogDTO{},
		&notificationrepo.NotificationDTO{},
	}
}

// Migrate creates or widens the schema.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(Models()...)
}
