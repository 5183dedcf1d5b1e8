package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrRequestConfirmationCommandIsNotConstructed = errors.New(
	"RequestConfirmationCommand must be created via NewRequestConfirmationCommand constructor",
)

type RequestConfirmationCommand struct {
	PaymentBatchCommand

	guard guard.ConstructorGuard
}

func NewRequestConfirmationCommand(paymentIDs []kernel.UUID, actor kernel.Actor) (RequestConfirmationCommand, error) {
	batch, err := newPaymentBatchCommand(paymentIDs, actor)
	if err != nil {
		return RequestConfirmationCommand{}, err
	}
	return RequestConfirmationCommand{PaymentBatchCommand: batch, guard: guard.NewConstructorGuard()}, nil
}

func (c RequestConfirmationCommand) Validate() error {
	return c.guard.Validate(ErrRequestConfirmationCommandIsNotConstructed)
}
