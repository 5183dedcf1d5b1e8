package commands

import (
	"context"

	"freight/internal/core/domain/model/event"
	"freight/internal/core/domain/model/job"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/errs"
)

// SendPaymentsToAccountsCommandHandler hands a batch of payments to accounts.
// Every job of the batch must be cleared; otherwise nothing changes and the
// error names the jobs that are not.
type SendPaymentsToAccountsCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.EventDispatcher
	clock      clock.Clock
}

func NewSendPaymentsToAccountsCommandHandler(uowFactory UoWFactory, dispatcher ports.EventDispatcher, clk clock.Clock) SendPaymentsToAccountsCommandHandler {
	return SendPaymentsToAccountsCommandHandler{uowFactory: uowFactory, dispatcher: dispatcher, clock: clk}
}

// Handle moves Draft payments to Pending, or to No Payment for non-payable
// records, and advances each job to Payment.
func (h SendPaymentsToAccountsCommandHandler) Handle(ctx context.Context, cmd SendPaymentsToAccountsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	now := h.clock.Now()

	records, err := inTransaction(ctx, h.uowFactory, func(uow UoW) ([]event.Record, error) {
		payments, err := uow.PaymentRepository().GetMany(ctx, cmd.PaymentIDs())
		if err != nil {
			return nil, err
		}
		jobs, err := uow.JobRepository().GetMany(ctx, paymentJobIDs(payments))
		if err != nil {
			return nil, err
		}

		var notCleared []string
		for _, j := range jobs {
			if !j.IsCleared() {
				notCleared = append(notCleared, j.ID().String())
			}
		}
		if len(notCleared) > 0 {
			return nil, errs.NewPreconditionFailedError("jobs are not fully cleared", notCleared...)
		}

		for _, p := range payments {
			if !p.SendToAccounts(now) {
				continue
			}
			if err = uow.PaymentRepository().Update(ctx, p); err != nil {
				return nil, err
			}
		}
		if err = advanceJobs(ctx, uow, jobs, job.Payment, now); err != nil {
			return nil, err
		}

		return jobRecords(cmd.Actor(), event.ActionPaymentsSentToAccounts, "sent to accounts", payments, kernel.RoleAccounts, now)
	})
	if err != nil {
		return err
	}

	dispatch(ctx, h.dispatcher, records)
	return nil
}
