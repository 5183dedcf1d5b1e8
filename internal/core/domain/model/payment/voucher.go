package payment

import (
	"errors"
	"strings"
	"time"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrVoucherMetaIsNotConstructed = errors.New("VoucherMeta must be created via NewVoucherMeta")

// VoucherMeta describes how a payment batch was settled.
type VoucherMeta struct {
	method    string
	reference string
	paidOn    time.Time
	remarks   string

	guard guard.ConstructorGuard
}

func NewVoucherMeta(method, reference string, paidOn time.Time, remarks string) (VoucherMeta, error) {
	method = strings.TrimSpace(method)
	if method == "" {
		return VoucherMeta{}, errs.NewValueIsRequiredError("payment method")
	}
	if paidOn.IsZero() {
		return VoucherMeta{}, errs.NewValueIsRequiredError("paid on")
	}
	return VoucherMeta{
		method:    method,
		reference: strings.TrimSpace(reference),
		paidOn:    paidOn,
		remarks:   strings.TrimSpace(remarks),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (m VoucherMeta) Validate() error {
	return m.guard.Validate(ErrVoucherMetaIsNotConstructed)
}

func (m VoucherMeta) Method() string    { return m.method }
func (m VoucherMeta) Reference() string { return m.reference }
func (m VoucherMeta) PaidOn() time.Time { return m.paidOn }
func (m VoucherMeta) Remarks() string   { return m.remarks }
