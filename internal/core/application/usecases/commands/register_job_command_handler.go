package commands

import (
	"context"
	"fmt"
	"log/slog"

	"freight/internal/core/application/sequence"
	"freight/internal/core/domain/model/event"
	"freight/internal/core/domain/model/job"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/errs"
)

// RegisterJobCommandHandler allocates the SH- number and stores the job with
// its bills of lading and containers in one transaction.
type RegisterJobCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.EventDispatcher
	allocator  sequence.Allocator
	clock      clock.Clock
	logger     *slog.Logger
}

func NewRegisterJobCommandHandler(
	uowFactory UoWFactory,
	dispatcher ports.EventDispatcher,
	clk clock.Clock,
	logger *slog.Logger,
) RegisterJobCommandHandler {
	return RegisterJobCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		allocator:  sequence.NewAllocator(),
		clock:      clk,
		logger:     logger.With("component", "register-job"),
	}
}

// Handle returns the identifier of the registered job.
func (h RegisterJobCommandHandler) Handle(ctx context.Context, cmd RegisterJobCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	var (
		jobID   string
		records []event.Record
	)
	err := retryOnConflict(ctx, h.logger, "register job", func() error {
		var err error
		jobID, records, err = h.register(ctx, cmd)
		return err
	})
	if err != nil {
		return "", err
	}

	dispatch(ctx, h.dispatcher, records)
	return jobID, nil
}

func (h RegisterJobCommandHandler) register(ctx context.Context, cmd RegisterJobCommand) (string, []event.Record, error) {
	now := h.clock.Now()

	bls := make([]job.BillOfLading, 0, len(cmd.BillsOfLading()))
	for _, p := range cmd.BillsOfLading() {
		bl, err := job.NewBillOfLading(kernel.NewUUID(), p)
		if err != nil {
			return "", nil, err
		}
		bls = append(bls, bl)
	}

	containers := make([]job.Container, 0, len(cmd.Containers()))
	for _, in := range cmd.Containers() {
		if in.BLNumber != "" && !hasBillOfLading(bls, in.BLNumber) {
			return "", nil, errs.NewValueIsInvalidErrorWithCause(
				"container bill of lading",
				fmt.Errorf("container %s refers to unknown bill of lading %s", in.Number, in.BLNumber),
			)
		}
		c, err := job.NewContainer(in.Number, in.Kind, in.BLNumber, in.Packages)
		if err != nil {
			return "", nil, err
		}
		containers = append(containers, c)
	}

	var jobID string
	records, err := inTransaction(ctx, h.uowFactory, func(uow UoW) ([]event.Record, error) {
		id, err := h.allocator.Next(ctx, uow.SequenceRepository(), kernel.JobScope, now)
		if err != nil {
			return nil, err
		}

		j, err := job.NewJob(id, cmd.Counterparts(), bls, containers, cmd.Actor(), now)
		if err != nil {
			return nil, err
		}
		if err = uow.JobRepository().Add(ctx, j); err != nil {
			return nil, err
		}
		jobID = id.String()

		rec, err := event.NewRecord(cmd.Actor(), event.ActionJobRegistered, event.EntityJob, jobID,
			fmt.Sprintf("customer %s, %d bill(s) of lading", j.Counterparts().Customer, len(bls)), now)
		if err != nil {
			return nil, err
		}
		return []event.Record{rec}, nil
	})
	if err != nil {
		return "", nil, err
	}
	return jobID, records, nil
}

func hasBillOfLading(bls []job.BillOfLading, ref string) bool {
	for _, bl := range bls {
		if bl.Matches(ref) {
			return true
		}
	}
	return false
}
