package commands

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/clearance"
	"freight/internal/core/domain/model/event"
	"freight/internal/core/domain/model/job"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/errs"
)

// ScheduleClearanceCommandHandler plans the clearance of one bill of lading
// and moves a New job to Pending.
type ScheduleClearanceCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.EventDispatcher
	clock      clock.Clock
}

func NewScheduleClearanceCommandHandler(uowFactory UoWFactory, dispatcher ports.EventDispatcher, clk clock.Clock) ScheduleClearanceCommandHandler {
	return ScheduleClearanceCommandHandler{uowFactory: uowFactory, dispatcher: dispatcher, clock: clk}
}

// Handle returns the identifier of the new schedule.
func (h ScheduleClearanceCommandHandler) Handle(ctx context.Context, cmd ScheduleClearanceCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	now := h.clock.Now()
	scheduleID := kernel.NewUUID()

	records, err := inTransaction(ctx, h.uowFactory, func(uow UoW) ([]event.Record, error) {
		jobs := uow.JobRepository()
		schedules := uow.ClearanceRepository()

		j, err := jobs.GetForUpdate(ctx, cmd.JobID().String())
		if err != nil {
			return nil, err
		}
		blNumber := cmd.BLNumber()
		if len(j.BillsOfLading()) > 0 {
			bl, ok := j.FindBillOfLading(blNumber)
			if !ok {
				return nil, errs.NewObjectNotFoundError("bill of lading", blNumber)
			}
			blNumber = bl.Reference()
		}

		s, err := clearance.NewSchedule(scheduleID, j.ID(), blNumber, cmd.PlannedDate(), cmd.Port(), cmd.Method(), cmd.Actor(), now)
		if err != nil {
			return nil, err
		}
		taken, err := schedules.ExistsOnDay(ctx, s.JobID(), s.BLNumber(), s.PlannedDate(), nil)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errs.NewConflictError("clearance schedule", s.Key())
		}

		changed, err := j.Advance(job.Pending, now)
		if err != nil {
			return nil, errs.NewPreconditionFailedError("job does not accept clearance schedules in status "+j.Status().String(), j.ID().String())
		}
		if err = schedules.Add(ctx, s); err != nil {
			return nil, err
		}
		if changed {
			if err = jobs.Update(ctx, j); err != nil {
				return nil, err
			}
		}

		rec, err := event.NewRecord(cmd.Actor(), event.ActionClearanceScheduled, event.EntityJob, s.JobID(),
			fmt.Sprintf("bill of lading %s planned on %s", s.BLNumber(), s.PlannedDate().Format("2006-01-02")), now)
		if err != nil {
			return nil, err
		}
		return []event.Record{rec.NotifyRole(kernel.RoleClearance)}, nil
	})
	if err != nil {
		return kernel.UUID{}, err
	}

	dispatch(ctx, h.dispatcher, records)
	return scheduleID, nil
}
