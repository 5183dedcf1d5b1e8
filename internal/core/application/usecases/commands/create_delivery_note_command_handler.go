package commands

import (
	"context"
	"fmt"
	"log/slog"

	"freight/internal/core/application/progress"
	"freight/internal/core/application/sequence"
	"freight/internal/core/domain/model/deliverynote"
	"freight/internal/core/domain/model/event"
	"freight/internal/core/domain/model/job"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/errs"
)

// JobProgress is the state of a job after a delivery recomputation.
type JobProgress struct {
	JobID    string
	Progress int
	Status   string
}

type CreateDeliveryNoteResult struct {
	NoteID string
	Jobs   []JobProgress
}

// CreateDeliveryNoteCommandHandler issues a delivery note and recomputes the
// progress of every job it references, all in one transaction. A failure
// anywhere leaves no part of the note behind.
// The note number is allocated inside the same transaction; losing the race
// for it to a concurrent writer is retried once with a fresh transaction.
//
// Example:
//
//	handler := NewCreateDeliveryNoteCommandHandler(uowFactory, dispatcher, clock.System{}, logger)
//	cmd, _ := NewCreateDeliveryNoteCommand(items, vehicles, deliverynote.Dates{IssuedOn: today}, "", actor)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    log.Println("Unknown job or schedule")
//	case errors.Is(err, errs.ErrConflict):
//	    log.Println("Note number taken twice, try again")
//	case err != nil:
//	    log.Printf("Delivery note failed: %v", err)
//	default:
//	    log.Printf("Issued %s", result.NoteID)
//	}
type CreateDeliveryNoteCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.EventDispatcher
	allocator  sequence.Allocator
	reconciler progress.Reconciler
	clock      clock.Clock
	logger     *slog.Logger
}

// NewCreateDeliveryNoteCommandHandler creates the handler. dispatcher receives
// the audit records after commit and may be nil.
func NewCreateDeliveryNoteCommandHandler(
	uowFactory UoWFactory,
	dispatcher ports.EventDispatcher,
	clk clock.Clock,
	logger *slog.Logger,
) CreateDeliveryNoteCommandHandler {
	return CreateDeliveryNoteCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		allocator:  sequence.NewAllocator(),
		reconciler: progress.NewReconciler(),
		clock:      clk,
		logger:     logger.With("component", "create-delivery-note"),
	}
}

// Handle issues the note and returns its number with the recomputed progress
// and status of each referenced job. Every job and schedule must exist, and a
// schedule must belong to the job of its item. Post-commit delivery of audit
// and notification records never fails the call.
func (h CreateDeliveryNoteCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryNoteCommand) (CreateDeliveryNoteResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateDeliveryNoteResult{}, err
	}

	var (
		result  CreateDeliveryNoteResult
		records []event.Record
	)
	err := retryOnConflict(ctx, h.logger, "create delivery note", func() error {
		var err error
		result, records, err = h.create(ctx, cmd)
		return err
	})
	if err != nil {
		return CreateDeliveryNoteResult{}, err
	}

	dispatch(ctx, h.dispatcher, records)
	return result, nil
}

func (h CreateDeliveryNoteCommandHandler) create(ctx context.Context, cmd CreateDeliveryNoteCommand) (CreateDeliveryNoteResult, []event.Record, error) {
	now := h.clock.Now()
	var result CreateDeliveryNoteResult

	records, err := inTransaction(ctx, h.uowFactory, func(uow UoW) ([]event.Record, error) {
		jobs, err := uow.JobRepository().GetMany(ctx, cmd.JobIDs())
		if err != nil {
			return nil, err
		}
		if err = h.checkSchedules(ctx, uow, cmd); err != nil {
			return nil, err
		}

		id, err := h.allocator.Next(ctx, uow.SequenceRepository(), kernel.DeliveryNoteScope, now)
		if err != nil {
			return nil, err
		}

		items := make([]deliverynote.Item, 0, len(cmd.Items()))
		for _, in := range cmd.Items() {
			it, err := deliverynote.NewItem(kernel.NewUUID(), in.JobID, in.ScheduleID, in.Shortage, in.Damage, in.Remarks)
			if err != nil {
				return nil, err
			}
			items = append(items, it)
		}

		note, err := deliverynote.NewNote(id, snapshot(jobs[0]), items, cmd.Vehicles(), cmd.Dates(), cmd.Comments(), cmd.Actor(), now)
		if err != nil {
			return nil, err
		}
		if err = uow.DeliveryNoteRepository().Add(ctx, note); err != nil {
			return nil, err
		}

		result = CreateDeliveryNoteResult{NoteID: id.String()}
		records := make([]event.Record, 0, len(jobs))
		for _, jobID := range note.JobIDs() {
			out, err := h.reconciler.RecomputeDelivery(ctx, uow, jobID, now)
			if err != nil {
				return nil, err
			}
			result.Jobs = append(result.Jobs, JobProgress{JobID: jobID, Progress: out.Progress.Int(), Status: out.Status.String()})

			rec, err := event.NewRecord(cmd.Actor(), event.ActionDeliveryNoteCreated, event.EntityJob, jobID,
				fmt.Sprintf("delivery note %s issued, progress %d%%", id, out.Progress.Int()), now)
			if err != nil {
				return nil, err
			}
			if out.Cleared {
				rec = rec.NotifyRole(kernel.RoleAccounts)
			}
			records = append(records, rec)
		}
		return records, nil
	})
	if err != nil {
		return CreateDeliveryNoteResult{}, nil, err
	}
	return result, records, nil
}

// checkSchedules verifies every referenced schedule exists and belongs to the
// job of its item.
func (h CreateDeliveryNoteCommandHandler) checkSchedules(ctx context.Context, uow UoW, cmd CreateDeliveryNoteCommand) error {
	ids := cmd.ScheduleIDs()
	if len(ids) == 0 {
		return nil
	}
	schedules, err := uow.ClearanceRepository().GetMany(ctx, ids)
	if err != nil {
		return err
	}
	owner := make(map[string]string, len(schedules))
	for _, s := range schedules {
		owner[s.ID().String()] = s.JobID()
	}

	var mismatched []string
	for _, it := range cmd.Items() {
		if it.ScheduleID == nil {
			continue
		}
		if owner[it.ScheduleID.String()] != it.JobID.String() {
			mismatched = append(mismatched, it.ScheduleID.String())
		}
	}
	if len(mismatched) > 0 {
		return errs.NewValueIsInvalidErrorWithCause("delivery note items",
			fmt.Errorf("schedules %v do not belong to the job of their item", mismatched))
	}
	return nil
}

func snapshot(j *job.Job) deliverynote.Counterparts {
	cp := j.Counterparts()
	return deliverynote.Counterparts{
		Customer:  cp.Customer,
		Consignee: cp.Consignee,
		Exporter:  cp.Exporter,
		Shipper:   cp.Shipper,
	}
}
