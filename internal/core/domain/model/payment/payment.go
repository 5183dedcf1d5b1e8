package payment

import (
	"errors"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// NoPaymentType marks a record that documents a cost nobody pays.
const NoPaymentType = "No Payment"

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment")

// Payment is a cost line attached to a job.
type Payment struct {
	id          kernel.UUID
	jobID       string
	paymentType string
	vendor      string
	amount      decimal.Decimal
	payer       Payer
	status      Status

	voucherNo *string
	voucher   *VoucherMeta

	requestedBy string
	processedBy string
	paidAt      *time.Time
	createdAt   time.Time
	updatedAt   time.Time

	guard guard.ConstructorGuard
}

// NewPayment creates a Draft payment.
func NewPayment(
	id kernel.UUID,
	jobID kernel.SequenceID,
	paymentType, vendor string,
	amount decimal.Decimal,
	payer Payer,
	requestedBy kernel.Actor,
	at time.Time,
) (*Payment, error) {
	if err := errors.Join(id.Validate(), jobID.Validate(), requestedBy.Validate()); err != nil {
		return nil, err
	}
	paymentType = strings.TrimSpace(paymentType)
	if paymentType == "" {
		return nil, errs.NewValueIsRequiredError("payment type")
	}
	if amount.IsNegative() {
		return nil, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "unbounded")
	}
	if _, err := ParsePayer(string(payer)); err != nil {
		return nil, err
	}

	return &Payment{
		id:          id,
		jobID:       jobID.String(),
		paymentType: paymentType,
		vendor:      strings.TrimSpace(vendor),
		amount:      amount,
		payer:       payer,
		status:      Draft,
		requestedBy: requestedBy.Name(),
		createdAt:   at,
		updatedAt:   at,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Snapshot is the persisted state of a payment.
type Snapshot struct {
	ID          kernel.UUID
	JobID       string
	Type        string
	Vendor      string
	Amount      decimal.Decimal
	Payer       Payer
	Status      Status
	VoucherNo   *string
	Voucher     *VoucherMeta
	RequestedBy string
	ProcessedBy string
	PaidAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func RestorePayment(s Snapshot) (*Payment, error) {
	if err := errors.Join(s.ID.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}
	return &Payment{
		id:          s.ID,
		jobID:       s.JobID,
		paymentType: s.Type,
		vendor:      s.Vendor,
		amount:      s.Amount,
		payer:       s.Payer,
		status:      s.Status,
		voucherNo:   s.VoucherNo,
		voucher:     s.Voucher,
		requestedBy: s.RequestedBy,
		processedBy: s.ProcessedBy,
		paidAt:      s.PaidAt,
		createdAt:   s.CreatedAt,
		updatedAt:   s.UpdatedAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

func (p *Payment) ID() kernel.UUID         { return p.id }
func (p *Payment) JobID() string           { return p.jobID }
func (p *Payment) Type() string            { return p.paymentType }
func (p *Payment) Vendor() string          { return p.vendor }
func (p *Payment) Amount() decimal.Decimal { return p.amount }
func (p *Payment) Payer() Payer            { return p.payer }
func (p *Payment) Status() Status          { return p.status }
func (p *Payment) VoucherNo() *string      { return p.voucherNo }
func (p *Payment) Voucher() *VoucherMeta   { return p.voucher }
func (p *Payment) RequestedBy() string     { return p.requestedBy }
func (p *Payment) ProcessedBy() string     { return p.processedBy }
func (p *Payment) PaidAt() *time.Time      { return p.paidAt }
func (p *Payment) CreatedAt() time.Time    { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time    { return p.updatedAt }

// IsPayable is false for No Payment records, which never block settlement.
func (p *Payment) IsPayable() bool {
	return p.status != NoPayment && p.paymentType != NoPaymentType
}

// IsSettled reports whether the payment no longer counts as outstanding.
func (p *Payment) IsSettled() bool {
	return !p.IsPayable() || p.status == Paid
}

// CanBePaid reports whether the payment may join a voucher batch.
func (p *Payment) CanBePaid() bool {
	return p.status == Pending || p.status == Confirmed
}

// SendToAccounts flips a Draft payment to Pending, or to No Payment for a
// non-payable record. Payments past Draft are left as they are; the return
// value reports whether the status changed.
func (p *Payment) SendToAccounts(at time.Time) bool {
	if p.status != Draft {
		return false
	}
	if p.paymentType == NoPaymentType {
		p.status = NoPayment
	} else {
		p.status = Pending
	}
	p.updatedAt = at
	return true
}

// RequestConfirmation asks clearance to confirm the payment.
func (p *Payment) RequestConfirmation(at time.Time) error {
	if err := p.status.transitionTo(ConfirmationRequested); err != nil {
		return err
	}
	p.status = ConfirmationRequested
	p.updatedAt = at
	return nil
}

func (p *Payment) Confirm(at time.Time) error {
	if err := p.status.transitionTo(Confirmed); err != nil {
		return err
	}
	p.status = Confirmed
	p.updatedAt = at
	return nil
}

// MarkPaid settles the payment under voucherNo.
func (p *Payment) MarkPaid(voucherNo kernel.SequenceID, meta VoucherMeta, processedBy kernel.Actor, at time.Time) error {
	if err := errors.Join(voucherNo.Validate(), meta.Validate(), processedBy.Validate()); err != nil {
		return err
	}
	if voucherNo.Scope() != kernel.VoucherScope {
		return errs.NewValueIsInvalidError("voucher number")
	}
	if err := p.status.transitionTo(Paid); err != nil {
		return err
	}
	no := voucherNo.String()
	paidAt := at
	p.status = Paid
	p.voucherNo = &no
	p.voucher = &meta
	p.processedBy = processedBy.Name()
	p.paidAt = &paidAt
	p.updatedAt = at
	return nil
}
