package payment

import (
	"fmt"

	"freight/internal/pkg/errs"
)

type Status int

const (
	Unknown Status = iota
	Draft
	Pending
	NoPayment
	ConfirmationRequested
	Confirmed
	Paid
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:               "Unknown",
		Draft:                 "Draft",
		Pending:               "Pending",
		NoPayment:             "No Payment",
		ConfirmationRequested: "Confirmation Requested",
		Confirmed:             "Confirmed",
		Paid:                  "Paid",
	}
}

func ParseStatus(raw string) (Status, error) {
	for s, str := range getStatusStrings() {
		if s != Unknown && str == raw {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%q is not a valid status", raw))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func (s Status) Validate() error {
	if s < Draft || s > Paid {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Draft:                 {Pending, NoPayment, ConfirmationRequested},
		Pending:               {ConfirmationRequested, Paid},
		ConfirmationRequested: {Confirmed},
		Confirmed:             {Pending, Paid},
	}
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Paid || s == NoPayment
}

func (s Status) transitionTo(target Status) error {
	if !s.CanTransitionTo(target) {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status",
			fmt.Errorf("%s cannot transition to %s", s, target),
		)
	}
	return nil
}

// Payer is who bears the cost of a payment.
type Payer string

const (
	PayerCompany Payer = "Company"
	PayerClient  Payer = "Client"
)

func ParsePayer(raw string) (Payer, error) {
	switch Payer(raw) {
	case PayerCompany, PayerClient:
		return Payer(raw), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("payer", fmt.Errorf("%q is neither Company nor Client", raw))
	}
}
