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

// RequestConfirmationCommandHandler asks clearance to confirm a batch of
// payments and notifies the clearance role after commit.
type RequestConfirmationCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.EventDispatcher
	clock      clock.Clock
}

func NewRequestConfirmationCommandHandler(uowFactory UoWFactory, dispatcher ports.EventDispatcher, clk clock.Clock) RequestConfirmationCommandHandler {
	return RequestConfirmationCommandHandler{uowFactory: uowFactory, dispatcher: dispatcher, clock: clk}
}

func (h RequestConfirmationCommandHandler) Handle(ctx context.Context, cmd RequestConfirmationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	now := h.clock.Now()

	records, err := inTransaction(ctx, h.uowFactory, func(uow UoW) ([]event.Record, error) {
		payments, err := uow.PaymentRepository().GetMany(ctx, cmd.PaymentIDs())
		if err != nil {
			return nil, err
		}
		err = rejectPayments(payments, "payments cannot request confirmation", func(p *payment.Payment) bool {
			return p.Status().CanTransitionTo(payment.ConfirmationRequested)
		})
		if err != nil {
			return nil, err
		}

		jobs, err := uow.JobRepository().GetMany(ctx, paymentJobIDs(payments))
		if err != nil {
			return nil, err
		}
		for _, p := range payments {
			if err = p.RequestConfirmation(now); err != nil {
				return nil, err
			}
			if err = uow.PaymentRepository().Update(ctx, p); err != nil {
				return nil, err
			}
		}
		if err = advanceJobs(ctx, uow, jobs, job.PaymentConfirmation, now); err != nil {
			return nil, err
		}

		return jobRecords(cmd.Actor(), event.ActionConfirmationRequested, "awaiting confirmation", payments, kernel.RoleClearance, now)
	})
	if err != nil {
		return err
	}

	dispatch(ctx, h.dispatcher, records)
	return nil
}
