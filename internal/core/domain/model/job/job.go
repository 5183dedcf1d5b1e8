package job

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrJobIsNotConstructed = errors.New("Job must be created via NewJob or RestoreJob")

// Job is the aggregate root of a shipment.
//
// Invariants:
//   - id follows SH-YYYY-NNN
//   - progress stays within 0..100 and is never set directly by callers
//   - status changes go through Status.TransitionTo
//   - clearedAt is set once, the first time every bill of lading is delivered
//   - settledAt is set once, the first time every payable payment is paid
type Job struct {
	id           kernel.SequenceID
	counterparts Counterparts
	bls          []BillOfLading
	containers   []Container

	status      Status
	progress    kernel.Progress
	clearedAt   *time.Time
	settledAt   *time.Time
	completedAt *time.Time

	createdBy string
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewJob registers a shipment in New status with zero progress.
func NewJob(
	id kernel.SequenceID,
	counterparts Counterparts,
	bls []BillOfLading,
	containers []Container,
	createdBy kernel.Actor,
	at time.Time,
) (*Job, error) {
	if err := errors.Join(id.Validate(), createdBy.Validate()); err != nil {
		return nil, err
	}
	if id.Scope() != kernel.JobScope {
		return nil, errs.NewValueIsInvalidErrorWithCause("job id", fmt.Errorf("%s is not a job id", id))
	}
	cp, err := counterparts.normalized()
	if err != nil {
		return nil, err
	}
	if err := checkBLs(bls); err != nil {
		return nil, err
	}

	return &Job{
		id:           id,
		counterparts: cp,
		bls:          append([]BillOfLading(nil), bls...),
		containers:   append([]Container(nil), containers...),
		status:       New,
		progress:     kernel.ProgressRegistered,
		createdBy:    createdBy.Name(),
		createdAt:    at,
		updatedAt:    at,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Snapshot is the persisted state of a job.
type Snapshot struct {
	ID           kernel.SequenceID
	Counterparts Counterparts
	BLs          []BillOfLading
	Containers   []Container
	Status       Status
	Progress     kernel.Progress
	ClearedAt    *time.Time
	SettledAt    *time.Time
	CompletedAt  *time.Time
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RestoreJob rebuilds a job from storage.
func RestoreJob(s Snapshot) (*Job, error) {
	if err := errors.Join(s.ID.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}
	if _, err := kernel.NewProgress(s.Progress.Int()); err != nil {
		return nil, err
	}
	return &Job{
		id:           s.ID,
		counterparts: s.Counterparts,
		bls:          s.BLs,
		containers:   s.Containers,
		status:       s.Status,
		progress:     s.Progress,
		clearedAt:    s.ClearedAt,
		settledAt:    s.SettledAt,
		completedAt:  s.CompletedAt,
		createdBy:    s.CreatedBy,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func checkBLs(bls []BillOfLading) error {
	seen := make(map[string]struct{}, len(bls))
	for _, bl := range bls {
		if err := bl.ID().Validate(); err != nil {
			return err
		}
		if _, dup := seen[bl.MasterNo()]; dup {
			return errs.NewValueIsInvalidErrorWithCause("bills of lading", fmt.Errorf("master number %s is listed twice", bl.MasterNo()))
		}
		seen[bl.MasterNo()] = struct{}{}
	}
	return nil
}

func (j *Job) Validate() error {
	if j == nil {
		return ErrJobIsNotConstructed
	}
	return j.guard.Validate(ErrJobIsNotConstructed)
}

func (j *Job) ID() kernel.SequenceID      { return j.id }
func (j *Job) Counterparts() Counterparts { return j.counterparts }
func (j *Job) Status() Status             { return j.status }
func (j *Job) Progress() kernel.Progress  { return j.progress }
func (j *Job) ClearedAt() *time.Time      { return j.clearedAt }
func (j *Job) SettledAt() *time.Time      { return j.settledAt }
func (j *Job) CompletedAt() *time.Time    { return j.completedAt }
func (j *Job) CreatedBy() string          { return j.createdBy }
func (j *Job) CreatedAt() time.Time       { return j.createdAt }
func (j *Job) UpdatedAt() time.Time       { return j.updatedAt }

func (j *Job) BillsOfLading() []BillOfLading {
	return append([]BillOfLading(nil), j.bls...)
}

func (j *Job) Containers() []Container {
	return append([]Container(nil), j.containers...)
}

// FindBillOfLading looks a bill up by master or house number.
func (j *Job) FindBillOfLading(ref string) (BillOfLading, bool) {
	for _, bl := range j.bls {
		if bl.Matches(ref) {
			return bl, true
		}
	}
	return BillOfLading{}, false
}

// TotalBLs is the number of bills of lading, or 1 for a job without any.
func (j *Job) TotalBLs() int {
	return max(len(j.bls), 1)
}

// IsCleared reports whether every bill of lading has been delivered at some point.
// Payment settlement can lower progress after clearance, so clearedAt is kept
// as the durable marker.
func (j *Job) IsCleared() bool {
	return j.progress.IsComplete() || j.status == Cleared || j.clearedAt != nil
}

// SetConsigneeCode backfills the canonical consignee code.
func (j *Job) SetConsigneeCode(code string, at time.Time) {
	if code == "" || j.counterparts.ConsigneeCode == code {
		return
	}
	j.counterparts.ConsigneeCode = code
	j.updatedAt = at
}

// Advance requests a status change. It reports whether the status changed;
// absorbed requests return false with no error.
func (j *Job) Advance(target Status, at time.Time) (bool, error) {
	next, err := j.status.TransitionTo(target)
	if err != nil {
		return false, err
	}
	if next == j.status {
		return false, nil
	}
	j.status = next
	j.updatedAt = at
	return true, nil
}

// DeliveryOutcome describes the effect of a delivery recomputation.
type DeliveryOutcome struct {
	Previous kernel.Progress
	Progress kernel.Progress
	Status   Status
	// Cleared is true only on the call that first reached full delivery.
	Cleared bool
}

// Changed reports whether progress moved.
func (o DeliveryOutcome) Changed() bool {
	return o.Previous != o.Progress
}

// ApplyDeliveryProgress recomputes progress from the delivered bill count.
// Reaching every bill sets progress to 100, records clearedAt and moves the
// job to Cleared. A completed job keeps its status.
func (j *Job) ApplyDeliveryProgress(delivered int, at time.Time) (DeliveryOutcome, error) {
	progress, err := kernel.DeliveryProgress(delivered, j.TotalBLs())
	if err != nil {
		return DeliveryOutcome{}, err
	}
	out := DeliveryOutcome{Previous: j.progress, Progress: progress}

	if progress.IsComplete() {
		if _, err := j.Advance(Cleared, at); err != nil {
			return DeliveryOutcome{}, err
		}
		if j.clearedAt == nil {
			cleared := at
			j.clearedAt = &cleared
			out.Cleared = true
		}
	}
	if j.progress != progress {
		j.progress = progress
		j.updatedAt = at
	}
	out.Status = j.status
	return out, nil
}

// ApplyPaymentSettlement records that every payable payment is paid by
// setting progress to 75 and stamping settledAt. It reports whether this call
// was the settlement transition; a completed or already settled job is left
// untouched.
func (j *Job) ApplyPaymentSettlement(at time.Time) bool {
	if j.status == Completed || j.settledAt != nil {
		return false
	}
	settled := at
	j.settledAt = &settled
	j.progress = kernel.ProgressSettled
	j.updatedAt = at
	return true
}

// Complete closes the job with progress 100. It requires clearance and
// settled payments.
func (j *Job) Complete(paymentsSettled bool, at time.Time) error {
	if j.status == Completed {
		return nil
	}
	if !j.IsCleared() {
		return errs.NewPreconditionFailedError("job is not cleared", j.id.String())
	}
	if !paymentsSettled {
		return errs.NewPreconditionFailedError("job has unpaid payments", j.id.String())
	}
	if _, err := j.Advance(Completed, at); err != nil {
		return errs.NewPreconditionFailedError(err.Error(), j.id.String())
	}
	done := at
	j.completedAt = &done
	j.progress = kernel.ProgressCleared
	return nil
}
