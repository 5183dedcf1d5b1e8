package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrSendPaymentsToAccountsCommandIsNotConstructed = errors.New(
	"SendPaymentsToAccountsCommand must be created via NewSendPaymentsToAccountsCommand constructor",
)

type SendPaymentsToAccountsCommand struct {
	PaymentBatchCommand

	guard guard.ConstructorGuard
}

func NewSendPaymentsToAccountsCommand(paymentIDs []kernel.UUID, actor kernel.Actor) (SendPaymentsToAccountsCommand, error) {
	batch, err := newPaymentBatchCommand(paymentIDs, actor)
	if err != nil {
		return SendPaymentsToAccountsCommand{}, err
	}
	return SendPaymentsToAccountsCommand{PaymentBatchCommand: batch, guard: guard.NewConstructorGuard()}, nil
}

func (c SendPaymentsToAccountsCommand) Validate() error {
	return c.guard.Validate(ErrSendPaymentsToAccountsCommandIsNotConstructed)
}
