package commands

import (
	"errors"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/payment"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAddJobPaymentCommandIsNotConstructed = errors.New(
	"AddJobPaymentCommand must be created via NewAddJobPaymentCommand constructor",
)

type AddJobPaymentCommand struct {
	jobID       kernel.SequenceID
	paymentType string
	vendor      string
	amount      decimal.Decimal
	payer       payment.Payer
	actor       kernel.Actor

	guard guard.ConstructorGuard
}

func NewAddJobPaymentCommand(
	jobID kernel.SequenceID,
	paymentType, vendor string,
	amount decimal.Decimal,
	payer payment.Payer,
	actor kernel.Actor,
) (AddJobPaymentCommand, error) {
	if err := errors.Join(jobID.Validate(), actor.Validate()); err != nil {
		return AddJobPaymentCommand{}, err
	}
	if strings.TrimSpace(paymentType) == "" {
		return AddJobPaymentCommand{}, errs.NewValueIsRequiredError("payment type")
	}
	if amount.IsNegative() {
		return AddJobPaymentCommand{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "unbounded")
	}
	if _, err := payment.ParsePayer(string(payer)); err != nil {
		return AddJobPaymentCommand{}, err
	}
	return AddJobPaymentCommand{
		jobID:       jobID,
		paymentType: paymentType,
		vendor:      vendor,
		amount:      amount,
		payer:       payer,
		actor:       actor,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AddJobPaymentCommand) Validate() error {
	return c.guard.Validate(ErrAddJobPaymentCommandIsNotConstructed)
}

func (c AddJobPaymentCommand) JobID() kernel.SequenceID { return c.jobID }
func (c AddJobPaymentCommand) Type() string             { return c.paymentType }
func (c AddJobPaymentCommand) Vendor() string           { return c.vendor }
func (c AddJobPaymentCommand) Amount() decimal.Decimal  { return c.amount }
func (c AddJobPaymentCommand) Payer() payment.Payer     { return c.payer }
func (c AddJobPaymentCommand) Actor() kernel.Actor      { return c.actor }
