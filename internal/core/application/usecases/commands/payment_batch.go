package commands

import (
	"context"
	"fmt"
	"sort"
	"time"

	"freight/internal/core/domain/model/event"
	"freight/internal/core/domain/model/job"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/payment"
	"freight/internal/pkg/errs"
)

// uniquePaymentIDs drops repeated ids and rejects an empty selection.
func uniquePaymentIDs(ids []kernel.UUID) ([]kernel.UUID, error) {
	if len(ids) == 0 {
		return nil, errs.NewValueIsRequiredError("payment ids")
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[id.String()]; ok {
			continue
		}
		seen[id.String()] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

// paymentJobIDs lists the distinct jobs of payments, sorted so concurrent
// batches lock jobs in the same order.
func paymentJobIDs(payments []*payment.Payment) []string {
	seen := make(map[string]struct{}, len(payments))
	ids := make([]string, 0, len(payments))
	for _, p := range payments {
		if _, ok := seen[p.JobID()]; ok {
			continue
		}
		seen[p.JobID()] = struct{}{}
		ids = append(ids, p.JobID())
	}
	sort.Strings(ids)
	return ids
}

// rejectPayments names every payment for which ok is false.
func rejectPayments(payments []*payment.Payment, reason string, ok func(*payment.Payment) bool) error {
	var offending []string
	for _, p := range payments {
		if !ok(p) {
			offending = append(offending, p.ID().String())
		}
	}
	if len(offending) > 0 {
		return errs.NewPreconditionFailedError(reason, offending...)
	}
	return nil
}

// advanceJobs requests target on every job and writes those that changed.
// Jobs whose transition table rejects target fail the batch together.
func advanceJobs(ctx context.Context, uow UoW, jobs []*job.Job, target job.Status, at time.Time) error {
	var (
		rejected []string
		changed  []*job.Job
	)
	for _, j := range jobs {
		moved, err := j.Advance(target, at)
		if err != nil {
			rejected = append(rejected, j.ID().String())
			continue
		}
		if moved {
			changed = append(changed, j)
		}
	}
	if len(rejected) > 0 {
		return errs.NewPreconditionFailedError("jobs cannot move to "+target.String(), rejected...)
	}
	for _, j := range changed {
		if err := uow.JobRepository().Update(ctx, j); err != nil {
			return err
		}
	}
	return nil
}

// jobRecords builds one record per job, counting the job's payments in the batch.
func jobRecords(actor kernel.Actor, action event.Action, verb string, payments []*payment.Payment, audience kernel.Role, at time.Time) ([]event.Record, error) {
	counts := make(map[string]int)
	for _, p := range payments {
		counts[p.JobID()]++
	}
	records := make([]event.Record, 0, len(counts))
	for _, jobID := range paymentJobIDs(payments) {
		rec, err := event.NewRecord(actor, action, event.EntityJob, jobID,
			fmt.Sprintf("%d payment(s) %s", counts[jobID], verb), at)
		if err != nil {
			return nil, err
		}
		if audience != "" {
			rec = rec.NotifyRole(audience)
		}
		records = append(records, rec)
	}
	return records, nil
}

// PaymentBatchCommand selects payments for a batch transition.
type PaymentBatchCommand struct {
	paymentIDs []kernel.UUID
	actor      kernel.Actor
}

func newPaymentBatchCommand(paymentIDs []kernel.UUID, actor kernel.Actor) (PaymentBatchCommand, error) {
	if err := actor.Validate(); err != nil {
		return PaymentBatchCommand{}, err
	}
	ids, err := uniquePaymentIDs(paymentIDs)
	if err != nil {
		return PaymentBatchCommand{}, err
	}
	return PaymentBatchCommand{paymentIDs: ids, actor: actor}, nil
}

func (c PaymentBatchCommand) PaymentIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.paymentIDs...)
}

func (c PaymentBatchCommand) Actor() kernel.Actor { return c.actor }
