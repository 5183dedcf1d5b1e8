package kernel

import (
	"freight/internal/pkg/errs"
)

// Progress is a shipment's derived completion percentage. It is written only by
// the progress reconciler and never accepted as input.
type Progress int

const (
	// ProgressRegistered is the value of a freshly registered job.
	ProgressRegistered Progress = 0
	// ProgressSettled is applied once every payable payment of a job is paid.
	ProgressSettled Progress = 75
	// ProgressCleared means every bill of lading has been delivered.
	ProgressCleared Progress = 100
)

// NewProgress validates the 0..100 bound.
func NewProgress(value int) (Progress, error) {
	if value < 0 || value > 100 {
		return 0, errs.NewValueIsOutOfRangeError("progress", value, 0, 100)
	}
	return Progress(value), nil
}

// DeliveryProgress computes floor(delivered/total*100). delivered is clamped to
// [0, total] and total must be positive.
func DeliveryProgress(delivered, total int) (Progress, error) {
	if total < 1 {
		return 0, errs.NewValueIsOutOfRangeError("total bills of lading", total, 1, "unbounded")
	}
	delivered = min(max(delivered, 0), total)
	return NewProgress(delivered * 100 / total)
}

func (p Progress) Int() int {
	return int(p)
}

// IsComplete reports whether the value is 100.
func (p Progress) IsComplete() bool {
	return p == ProgressCleared
}
