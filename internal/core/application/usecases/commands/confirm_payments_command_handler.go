package commands

import (
	"context"

	"freight/internal/core/domain/model/event"
	"freight/internal/core/domain/model/job"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/payment"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"
)

type ConfirmPaymentsCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.EventDispatcher
	clock      clock.Clock
}

func NewConfirmPaymentsCommandHandler(uowFactory UoWFactory, dispatcher ports.EventDispatcher, clk clock.Clock) ConfirmPaymentsCommandHandler {
	return ConfirmPaymentsCommandHandler{uowFactory: uowFactory, dispatcher: dispatcher, clock: clk}
}

// Handle confirms every payment of the batch and moves their jobs to Payment.
func (h ConfirmPaymentsCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	now := h.clock.Now()

	records, err := inTransaction(ctx, h.uowFactory, func(uow UoW) ([]event.Record, error) {
		payments, err := uow.PaymentRepository().GetMany(ctx, cmd.PaymentIDs())
		if err != nil {
			return nil, err
		}
		err = rejectPayments(payments, "payments are not awaiting confirmation", func(p *payment.Payment) bool {
			return p.Status() == payment.ConfirmationRequested
		})
		if err != nil {
			return nil, err
		}

		jobs, err := uow.JobRepository().GetMany(ctx, paymentJobIDs(payments))
		if err != nil {
			return nil, err
		}
		for _, p := range payments {
			if err = p.Confirm(now); err != nil {
				return nil, err
			}
			if err = uow.PaymentRepository().Update(ctx, p); err != nil {
				return nil, err
			}
		}
		if err = advanceJobs(ctx, uow, jobs, job.Payment, now); err != nil {
			return nil, err
		}

		return jobRecords(cmd.Actor(), event.ActionPaymentsConfirmed, "confirmed", payments, kernel.RoleAccounts, now)
	})
	if err != nil {
		return err
	}

	dispatch(ctx, h.dispatcher, records)
	return nil
}
