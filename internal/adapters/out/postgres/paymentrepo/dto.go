package paymentrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	JobID       string          `gorm:"type:varchar(32);not null;index"`
	Type        string          `gorm:"type:varchar(64);not null"`
	Vendor      string          `gorm:"type:varchar(255)"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Payer       string          `gorm:"type:varchar(16);not null"`
	Status      string          `gorm:"type:varchar(32);not null;index"`
	VoucherNo   *string         `gorm:"type:varchar(32);index"`
	Voucher     *VoucherDTO     `gorm:"foreignKey:VoucherNo;references:VoucherNo"`
	RequestedBy string          `gorm:"type:varchar(255)"`
	ProcessedBy string          `gorm:"type:varchar(255)"`
	PaidAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PaymentDTO) TableName() string {
	return "job_payments"
}

// VoucherDTO is the settlement record shared by every payment of one batch.
type VoucherDTO struct {
	VoucherNo   string    `gorm:"type:varchar(32);primaryKey"`
	Method      string    `gorm:"type:varchar(64);not null"`
	Reference   string    `gorm:"type:varchar(255)"`
	PaidOn      time.Time `gorm:"type:date;not null"`
	Remarks     string    `gorm:"type:text"`
	ProcessedBy string    `gorm:"type:varchar(255)"`
	CreatedAt   time.Time
}

func (VoucherDTO) TableName() string {
	return "vouchers"
}

func fromDomain(aggregate *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:          aggregate.ID().Bytes(),
		JobID:       aggregate.JobID(),
		Type:        aggregate.Type(),
		Vendor:      aggregate.Vendor(),
		Amount:      aggregate.Amount(),
		Payer:       string(aggregate.Payer()),
		Status:      aggregate.Status().String(),
		VoucherNo:   aggregate.VoucherNo(),
		RequestedBy: aggregate.RequestedBy(),
		ProcessedBy: aggregate.ProcessedBy(),
		PaidAt:      aggregate.PaidAt(),
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}
}

func changes(dto PaymentDTO) map[string]any {
	return map[string]any{
		"status":       dto.Status,
		"voucher_no":   dto.VoucherNo,
		"processed_by": dto.ProcessedBy,
		"paid_at":      dto.PaidAt,
		"updated_at":   dto.UpdatedAt,
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	status, err := payment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	payer, err := payment.ParsePayer(dto.Payer)
	if err != nil {
		return nil, err
	}

	var voucher *payment.VoucherMeta
	if dto.Voucher != nil {
		meta, metaErr := payment.NewVoucherMeta(dto.Voucher.Method, dto.Voucher.Reference, dto.Voucher.PaidOn, dto.Voucher.Remarks)
		if metaErr != nil {
			return nil, metaErr
		}
		voucher = &meta
	}

	return payment.RestorePayment(payment.Snapshot{
		ID:          id,
		JobID:       dto.JobID,
		Type:        dto.Type,
		Vendor:      dto.Vendor,
		Amount:      dto.Amount,
		Payer:       payer,
		Status:      status,
		VoucherNo:   dto.VoucherNo,
		Voucher:     voucher,
		RequestedBy: dto.RequestedBy,
		ProcessedBy: dto.ProcessedBy,
		PaidAt:      dto.PaidAt,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	})
}
