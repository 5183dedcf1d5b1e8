package commands

import (
	"context"
	"log/slog"

	"freight/internal/core/application/progress"
	"freight/internal/core/application/sequence"
	"freight/internal/core/domain/model/event"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/payment"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"
)

// ProcessPaymentBatchCommandHandler settles a batch under one voucher number.
// Either every payment of the batch is Paid with the shared voucher or none
// changes. Jobs whose last payable payment is settled by the batch move to
// progress 75 in the same transaction.
//
// Example:
//
//	meta, _ := payment.NewVoucherMeta("Bank Transfer", "TT-88231", paidOn, "")
//	cmd, _ := NewProcessPaymentBatchCommand(paymentIDs, meta, actor)
//	voucherNo, err := handler.Handle(ctx, cmd)
//	var rejected *errs.PreconditionFailedError
//	switch {
//	case errors.As(err, &rejected):
//	    log.Printf("Not payable: %v", rejected.IDs)
//	case err != nil:
//	    log.Printf("Batch failed: %v", err)
//	default:
//	    log.Printf("Paid under %s", voucherNo)
//	}
type ProcessPaymentBatchCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.EventDispatcher
	allocator  sequence.Allocator
	reconciler progress.Reconciler
	clock      clock.Clock
	logger     *slog.Logger
}

// NewProcessPaymentBatchCommandHandler creates the handler. Retries after a
// voucher collision are logged through logger.
func NewProcessPaymentBatchCommandHandler(
	uowFactory UoWFactory,
	dispatcher ports.EventDispatcher,
	clk clock.Clock,
	logger *slog.Logger,
) ProcessPaymentBatchCommandHandler {
	return ProcessPaymentBatchCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		allocator:  sequence.NewAllocator(),
		reconciler: progress.NewReconciler(),
		clock:      clk,
		logger:     logger.With("component", "process-payment-batch"),
	}
}

// Handle returns the voucher number assigned to the batch.
// Every payment must be able to move to Paid; otherwise the whole batch is
// rejected with a PreconditionFailedError listing the offending payment ids.
// A voucher number taken by a concurrent batch is retried once and then
// surfaced as errs.ErrConflict.
func (h ProcessPaymentBatchCommandHandler) Handle(ctx context.Context, cmd ProcessPaymentBatchCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	var (
		voucherNo string
		records   []event.Record
	)
	err := retryOnConflict(ctx, h.logger, "process payment batch", func() error {
		var err error
		voucherNo, records, err = h.process(ctx, cmd)
		return err
	})
	if err != nil {
		return "", err
	}

	dispatch(ctx, h.dispatcher, records)
	return voucherNo, nil
}

func (h ProcessPaymentBatchCommandHandler) process(ctx context.Context, cmd ProcessPaymentBatchCommand) (string, []event.Record, error) {
	now := h.clock.Now()
	var voucherNo string

	records, err := inTransaction(ctx, h.uowFactory, func(uow UoW) ([]event.Record, error) {
		repo := uow.PaymentRepository()
		payments, err := repo.GetMany(ctx, cmd.PaymentIDs())
		if err != nil {
			return nil, err
		}
		err = rejectPayments(payments, "payments are not ready to be paid", func(p *payment.Payment) bool {
			return p.CanBePaid()
		})
		if err != nil {
			return nil, err
		}

		voucher, err := h.allocator.Next(ctx, uow.SequenceRepository(), kernel.VoucherScope, now)
		if err != nil {
			return nil, err
		}
		if err = repo.AddVoucher(ctx, voucher, cmd.Voucher(), cmd.Actor().Name(), now); err != nil {
			return nil, err
		}

		for _, p := range payments {
			if err = p.MarkPaid(voucher, cmd.Voucher(), cmd.Actor(), now); err != nil {
				return nil, err
			}
			if err = repo.Update(ctx, p); err != nil {
				return nil, err
			}
		}
		voucherNo = voucher.String()

		records, err := jobRecords(cmd.Actor(), event.ActionPaymentsPaid, "paid under voucher "+voucherNo, payments, kernel.RoleOperations, now)
		if err != nil {
			return nil, err
		}
		settled, err := h.reconciler.RecomputePaymentCompletion(ctx, uow, paymentJobIDs(payments), cmd.Actor(), now)
		if err != nil {
			return nil, err
		}
		return append(records, settled...), nil
	})
	if err != nil {
		return "", nil, err
	}
	return voucherNo, records, nil
}
