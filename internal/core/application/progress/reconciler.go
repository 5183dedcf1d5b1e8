// Package progress keeps Job.progress and the clearance status in step with
// the delivery notes and payments of a job. It is the only writer of progress
// and always runs inside the transaction of the triggering write.
package progress

import (
	"context"
	"fmt"
	"time"

	"freight/internal/core/domain/model/event"
	"freight/internal/core/domain/model/job"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
)

// DeliveryStore is the part of a unit of work delivery recomputation reads.
type DeliveryStore interface {
	JobRepository() ports.JobRepository
	DeliveryNoteRepository() ports.DeliveryNoteRepository
}

// PaymentStore is the part of a unit of work settlement recomputation reads.
type PaymentStore interface {
	JobRepository() ports.JobRepository
	PaymentRepository() ports.PaymentRepository
}

type Reconciler struct{}

func NewReconciler() Reconciler {
	return Reconciler{}
}

// RecomputeDelivery derives progress from the distinct delivered bills of
// lading of jobID. Running it again with unchanged notes yields the same
// progress and status.
func (Reconciler) RecomputeDelivery(ctx context.Context, store DeliveryStore, jobID string, at time.Time) (job.DeliveryOutcome, error) {
	jobs := store.JobRepository()
	j, err := jobs.GetForUpdate(ctx, jobID)
	if err != nil {
		return job.DeliveryOutcome{}, err
	}

	delivered, err := store.DeliveryNoteRepository().CountDeliveredBLs(ctx, jobID)
	if err != nil {
		return job.DeliveryOutcome{}, err
	}

	before := j.Status()
	out, err := j.ApplyDeliveryProgress(delivered, at)
	if err != nil {
		return job.DeliveryOutcome{}, err
	}
	if !out.Changed() && !out.Cleared && before == out.Status {
		return out, nil
	}
	if err := jobs.Update(ctx, j); err != nil {
		return job.DeliveryOutcome{}, err
	}
	return out, nil
}

// RecomputePaymentCompletion sets progress to 75 on every job in jobIDs whose
// payable payments are all Paid, skipping completed jobs. It returns one
// settlement record per job that transitioned; call it only from the write
// that paid the payments.
func (Reconciler) RecomputePaymentCompletion(ctx context.Context, store PaymentStore, jobIDs []string, actor kernel.Actor, at time.Time) ([]event.Record, error) {
	jobs := store.JobRepository()
	payments := store.PaymentRepository()

	var records []event.Record
	for _, id := range jobIDs {
		remaining, err := payments.CountOutstanding(ctx, id)
		if err != nil {
			return nil, err
		}
		if remaining > 0 {
			continue
		}

		j, err := jobs.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if !j.ApplyPaymentSettlement(at) {
			continue
		}
		if err := jobs.Update(ctx, j); err != nil {
			return nil, err
		}

		rec, err := event.NewRecord(actor, event.ActionPaymentsSettled, event.EntityJob, id,
			fmt.Sprintf("all payments paid, progress %d", j.Progress().Int()), at)
		if err != nil {
			return nil, err
		}
		records = append(records, rec.NotifyRole(kernel.RoleOperations))
	}
	return records, nil
}
