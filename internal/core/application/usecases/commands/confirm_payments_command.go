package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrConfirmPaymentsCommandIsNotConstructed = errors.New(
	"ConfirmPaymentsCommand must be created via NewConfirmPaymentsCommand constructor",
)

type ConfirmPaymentsCommand struct {
	PaymentBatchCommand

	guard guard.ConstructorGuard
}

func NewConfirmPaymentsCommand(paymentIDs []kernel.UUID, actor kernel.Actor) (ConfirmPaymentsCommand, error) {
	batch, err := newPaymentBatchCommand(paymentIDs, actor)
	if err != nil {
		return ConfirmPaymentsCommand{}, err
	}
	return ConfirmPaymentsCommand{PaymentBatchCommand: batch, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfirmPaymentsCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentsCommandIsNotConstructed)
}
