package paymentrepo

import (
	"context"
	"time"

	"freight/internal/adapters/out/postgres/dberr"
	"freight/internal/adapters/out/postgres/dialect"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/payment"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	resource        = "payment"
	voucherResource = "voucher"
)

type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) Add(ctx context.Context, aggregate *payment.Payment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Omit("Voucher").Create(&dto).Error; err != nil {
		return dberr.Translate(err, resource, aggregate.ID().String())
	}
	return nil
}

func (r *GormPaymentRepository) Update(ctx context.Context, aggregate *payment.Payment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PaymentDTO{}).Where("id = ?", dto.ID).Updates(changes(dto))
	if result.Error != nil {
		return dberr.Translate(result.Error, resource, aggregate.ID().String())
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(resource, aggregate.ID().String())
	}
	return nil
}

func (r *GormPaymentRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*payment.Payment, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []PaymentDTO
	err := dialect.ForUpdate(r.db).WithContext(ctx).
		Preload("Voucher").
		Where("id IN ?", raw).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, dberr.Translate(err, resource, ids[0].String())
	}

	byID := make(map[uuid.UUID]*payment.Payment, len(dtos))
	for _, dto := range dtos {
		p, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		byID[dto.ID] = p
	}

	payments := make([]*payment.Payment, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id.Bytes()]
		if !ok {
			return nil, errs.NewObjectNotFoundError(resource, id.String())
		}
		payments = append(payments, p)
	}
	return payments, nil
}

func (r *GormPaymentRepository) ListByJob(ctx context.Context, jobID string) ([]*payment.Payment, error) {
	var dtos []PaymentDTO
	err := r.db.WithContext(ctx).
		Preload("Voucher").
		Where("job_id = ?", jobID).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, dberr.Translate(err, resource, jobID)
	}

	payments := make([]*payment.Payment, 0, len(dtos))
	for _, dto := range dtos {
		p, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		payments = append(payments, p)
	}
	return payments, nil
}

func (r *GormPaymentRepository) CountOutstanding(ctx context.Context, jobID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&PaymentDTO{}).
		Where("job_id = ?", jobID).
		Where("type <> ?", payment.NoPaymentType).
		Where("status NOT IN ?", []string{payment.Paid.String(), payment.NoPayment.String()}).
		Count(&count).Error
	if err != nil {
		return 0, dberr.Translate(err, resource, jobID)
	}
	return int(count), nil
}

func (r *GormPaymentRepository) AddVoucher(
	ctx context.Context,
	voucherNo kernel.SequenceID,
	meta payment.VoucherMeta,
	processedBy string,
	at time.Time,
) error {
	if err := voucherNo.Validate(); err != nil {
		return err
	}
	if err := meta.Validate(); err != nil {
		return err
	}

	dto := VoucherDTO{
		VoucherNo:   voucherNo.String(),
		Method:      meta.Method(),
		Reference:   meta.Reference(),
		PaidOn:      meta.PaidOn(),
		Remarks:     meta.Remarks(),
		ProcessedBy: processedBy,
		CreatedAt:   at,
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Translate(err, voucherResource, dto.VoucherNo)
	}
	return nil
}
