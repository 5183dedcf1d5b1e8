package ports

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/payment"
)

// PaymentRepository persists JobPayment aggregates and the vouchers that
// settle them.
type PaymentRepository interface {
	Add(ctx context.Context, aggregate *payment.Payment) error
	Update(ctx context.Context, aggregate *payment.Payment) error

	// GetMany locks and returns the payments in the order of ids. Unknown ids
	// fail the call with errs.ObjectNotFoundError.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*payment.Payment, error)

	ListByJob(ctx context.Context, jobID string) ([]*payment.Payment, error)

	// CountOutstanding counts payable payments of the job that are not Paid.
	CountOutstanding(ctx context.Context, jobID string) (int, error)

	// AddVoucher registers a voucher number. A number already in use is
	// reported as errs.ConflictError.
	AddVoucher(ctx context.Context, voucherNo kernel.SequenceID, meta payment.VoucherMeta, processedBy string, at time.Time) error
}
