package commands

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/event"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/errs"
)

// RescheduleClearanceCommandHandler moves a schedule that has not been
// delivered yet to another day.
type RescheduleClearanceCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.EventDispatcher
	clock      clock.Clock
}

func NewRescheduleClearanceCommandHandler(uowFactory UoWFactory, dispatcher ports.EventDispatcher, clk clock.Clock) RescheduleClearanceCommandHandler {
	return RescheduleClearanceCommandHandler{uowFactory: uowFactory, dispatcher: dispatcher, clock: clk}
}

func (h RescheduleClearanceCommandHandler) Handle(ctx context.Context, cmd RescheduleClearanceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	now := h.clock.Now()

	records, err := inTransaction(ctx, h.uowFactory, func(uow UoW) ([]event.Record, error) {
		schedules := uow.ClearanceRepository()

		s, err := schedules.Get(ctx, cmd.ScheduleID())
		if err != nil {
			return nil, err
		}
		delivered, err := schedules.IsDelivered(ctx, s.ID())
		if err != nil {
			return nil, err
		}
		if delivered {
			return nil, errs.NewPreconditionFailedError("schedule is already on a delivery note", s.ID().String())
		}

		if err = s.Reschedule(cmd.NewDate(), cmd.Reason(), now); err != nil {
			return nil, err
		}
		id := s.ID()
		taken, err := schedules.ExistsOnDay(ctx, s.JobID(), s.BLNumber(), s.PlannedDate(), &id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errs.NewConflictError("clearance schedule", s.Key())
		}
		if err = schedules.Update(ctx, s); err != nil {
			return nil, err
		}

		rec, err := event.NewRecord(cmd.Actor(), event.ActionClearanceRescheduled, event.EntitySchedule, s.ID().String(),
			fmt.Sprintf("%s moved from %s to %s: %s", s.BLNumber(), s.PreviousDate().Format("2006-01-02"),
				s.PlannedDate().Format("2006-01-02"), s.RescheduleReason()), now)
		if err != nil {
			return nil, err
		}
		return []event.Record{rec.NotifyRole(kernel.RoleClearance)}, nil
	})
	if err != nil {
		return err
	}

	dispatch(ctx, h.dispatcher, records)
	return nil
}
