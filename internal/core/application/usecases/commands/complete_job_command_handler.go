package commands

import (
	"context"

	"freight/internal/core/domain/model/event"
	"freight/internal/core/domain/model/job"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"
)

// CompleteJobCommandHandler closes a job once it has been cleared and every
// payable payment is Paid.
type CompleteJobCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.EventDispatcher
	clock      clock.Clock
}

func NewCompleteJobCommandHandler(uowFactory UoWFactory, dispatcher ports.EventDispatcher, clk clock.Clock) CompleteJobCommandHandler {
	return CompleteJobCommandHandler{uowFactory: uowFactory, dispatcher: dispatcher, clock: clk}
}

func (h CompleteJobCommandHandler) Handle(ctx context.Context, cmd CompleteJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	now := h.clock.Now()

	records, err := inTransaction(ctx, h.uowFactory, func(uow UoW) ([]event.Record, error) {
		jobs := uow.JobRepository()
		j, err := jobs.GetForUpdate(ctx, cmd.JobID().String())
		if err != nil {
			return nil, err
		}
		if j.Status() == job.Completed {
			return nil, nil
		}
		outstanding, err := uow.PaymentRepository().CountOutstanding(ctx, j.ID().String())
		if err != nil {
			return nil, err
		}
		if err = j.Complete(outstanding == 0, now); err != nil {
			return nil, err
		}
		if err = jobs.Update(ctx, j); err != nil {
			return nil, err
		}

		rec, err := event.NewRecord(cmd.Actor(), event.ActionJobCompleted, event.EntityJob, j.ID().String(), "job completed", now)
		if err != nil {
			return nil, err
		}
		return []event.Record{rec.NotifyRole(kernel.RoleOperations)}, nil
	})
	if err != nil {
		return err
	}

	dispatch(ctx, h.dispatcher, records)
	return nil
}
