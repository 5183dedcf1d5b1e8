package job

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status is the lifecycle state of a job.
//
//	New ──> Pending ──> Payment Confirmation ──> Payment ──┐
//	 │         │                 │                        ├──> Completed
//	 └─────────┴──────> Cleared ─┴────────────────────────┘
//
// Cleared may happen before or after the payment states. Delivering the last
// bill shows Cleared from any status except Completed.
type Status int

const (
	Unknown Status = iota
	New
	Pending
	PaymentConfirmation
	Payment
	Cleared
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:             "Unknown",
		New:                 "New",
		Pending:             "Pending",
		PaymentConfirmation: "Payment Confirmation",
		Payment:             "Payment",
		Cleared:             "Cleared",
		Completed:           "Completed",
	}
}

// ParseStatus reads the persisted string form.
func ParseStatus(raw string) (Status, error) {
	for s, str := range getStatusStrings() {
		if s != Unknown && str == raw {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("job status", fmt.Errorf("%q is not a valid status", raw))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func (s Status) Validate() error {
	if s < New || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("job status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

type transition int

const (
	reject transition = iota
	advance
	// keep absorbs a request for an axis the job has already passed.
	keep
)

func getTransitions() map[Status]map[Status]transition {
	return map[Status]map[Status]transition{
		New: {
			Pending:             advance,
			PaymentConfirmation: advance,
			Cleared:             advance,
		},
		Pending: {
			Pending:             keep,
			PaymentConfirmation: advance,
			Payment:             advance,
			Cleared:             advance,
		},
		PaymentConfirmation: {
			Pending:             keep,
			PaymentConfirmation: keep,
			Payment:             advance,
			Cleared:             advance,
		},
		Cleared: {
			Pending:             keep,
			PaymentConfirmation: advance,
			Payment:             advance,
			Cleared:             keep,
			Completed:           advance,
		},
		Payment: {
			Pending:             keep,
			PaymentConfirmation: keep,
			Payment:             keep,
			Cleared:             advance,
			Completed:           advance,
		},
		Completed: {
			Payment:   keep,
			Cleared:   keep,
			Completed: keep,
		},
	}
}

// TransitionTo resolves a requested status change against the transition table.
//
// Returns:
//   - (target, nil) when the transition advances the job
//   - (s, nil) when the request is absorbed because the axis was already passed
//   - (Unknown, error) when the transition is illegal
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	switch getTransitions()[s][target] {
	case advance:
		return target, nil
	case keep:
		return s, nil
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"job status",
			fmt.Errorf("%s cannot transition to %s", s, target),
		)
	}
}

// CanTransitionTo reports whether TransitionTo would succeed.
func (s Status) CanTransitionTo(target Status) bool {
	_, err := s.TransitionTo(target)
	return err == nil
}
