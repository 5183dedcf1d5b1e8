package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/payment"
	"freight/internal/pkg/guard"
)

var ErrProcessPaymentBatchCommandIsNotConstructed = errors.New(
	"ProcessPaymentBatchCommand must be created via NewProcessPaymentBatchCommand constructor",
)

type ProcessPaymentBatchCommand struct {
	PaymentBatchCommand
	voucher payment.VoucherMeta

	guard guard.ConstructorGuard
}

func NewProcessPaymentBatchCommand(paymentIDs []kernel.UUID, voucher payment.VoucherMeta, actor kernel.Actor) (ProcessPaymentBatchCommand, error) {
	if err := voucher.Validate(); err != nil {
		return ProcessPaymentBatchCommand{}, err
	}
	batch, err := newPaymentBatchCommand(paymentIDs, actor)
	if err != nil {
		return ProcessPaymentBatchCommand{}, err
	}
	return ProcessPaymentBatchCommand{PaymentBatchCommand: batch, voucher: voucher, guard: guard.NewConstructorGuard()}, nil
}

func (c ProcessPaymentBatchCommand) Validate() error {
	return c.guard.Validate(ErrProcessPaymentBatchCommandIsNotConstructed)
}

func (c ProcessPaymentBatchCommand) Voucher() payment.VoucherMeta { return c.voucher }
