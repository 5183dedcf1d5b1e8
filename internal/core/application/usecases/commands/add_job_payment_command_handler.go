package commands

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/event"
	"freight/internal/core/domain/model/job"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/payment"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/errs"
)

type AddJobPaymentCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.EventDispatcher
	clock      clock.Clock
}

func NewAddJobPaymentCommandHandler(uowFactory UoWFactory, dispatcher ports.EventDispatcher, clk clock.Clock) AddJobPaymentCommandHandler {
	return AddJobPaymentCommandHandler{uowFactory: uowFactory, dispatcher: dispatcher, clock: clk}
}

// Handle creates a Draft payment and returns its identifier.
func (h AddJobPaymentCommandHandler) Handle(ctx context.Context, cmd AddJobPaymentCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	now := h.clock.Now()
	paymentID := kernel.NewUUID()

	records, err := inTransaction(ctx, h.uowFactory, func(uow UoW) ([]event.Record, error) {
		j, err := uow.JobRepository().Get(ctx, cmd.JobID().String())
		if err != nil {
			return nil, err
		}
		if j.Status() == job.Completed {
			return nil, errs.NewPreconditionFailedError("job is completed", j.ID().String())
		}

		p, err := payment.NewPayment(paymentID, j.ID(), cmd.Type(), cmd.Vendor(), cmd.Amount(), cmd.Payer(), cmd.Actor(), now)
		if err != nil {
			return nil, err
		}
		if err = uow.PaymentRepository().Add(ctx, p); err != nil {
			return nil, err
		}

		rec, err := event.NewRecord(cmd.Actor(), event.ActionPaymentAdded, event.EntityPayment, paymentID.String(),
			fmt.Sprintf("%s %s for %s paid by %s", p.Type(), p.Amount().StringFixed(2), p.JobID(), p.Payer()), now)
		if err != nil {
			return nil, err
		}
		return []event.Record{rec}, nil
	})
	if err != nil {
		return kernel.UUID{}, err
	}

	dispatch(ctx, h.dispatcher, records)
	return paymentID, nil
}
