package queries

import (
	"context"
	"errors"
	"time"

	"freight/internal/adapters/out/postgres/dberr"
	"freight/internal/core/domain/model/payment"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetJobQueryHandler reads the job read model with plain SQL.
type GetJobQueryHandler struct {
	db *gorm.DB
}

func NewGetJobQueryHandler(db *gorm.DB) GetJobQueryHandler {
	return GetJobQueryHandler{db: db}
}

type jobRow struct {
	ID            string
	Status        string
	Progress      int
	Customer      string
	Consignee     string
	ConsigneeCode string
	Exporter      string
	Shipper       string
	ClearedAt     *time.Time
	SettledAt     *time.Time
	CompletedAt   *time.Time
	CreatedAt     time.Time
}

type paymentRow struct {
	Type   string
	Status string
	Amount decimal.Decimal
}

func (h GetJobQueryHandler) Handle(ctx context.Context, query GetJobQuery) (GetJobQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetJobQueryResponse{}, err
	}
	db := h.db.WithContext(ctx)
	id := query.JobID().String()

	var row jobRow
	err := db.Table("jobs").
		Select("id, status, progress, customer, consignee, consignee_code, exporter, shipper, cleared_at, settled_at, completed_at, created_at").
		Where("id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return GetJobQueryResponse{}, errs.NewObjectNotFoundError("job", id)
	}
	if err != nil {
		return GetJobQueryResponse{}, dberr.Translate(err, "job", id)
	}
	res := GetJobQueryResponse{
		ID:            row.ID,
		Status:        row.Status,
		Progress:      row.Progress,
		Customer:      row.Customer,
		Consignee:     row.Consignee,
		ConsigneeCode: row.ConsigneeCode,
		Exporter:      row.Exporter,
		Shipper:       row.Shipper,
		ClearedAt:     row.ClearedAt,
		SettledAt:     row.SettledAt,
		CompletedAt:   row.CompletedAt,
		CreatedAt:     row.CreatedAt,
	}

	if err = db.Table("bills_of_lading").
		Select("master_no, house_no, vessel, port_of_loading, port_of_discharge").
		Where("job_id = ?", id).
		Order("master_no").
		Scan(&res.BillsOfLading).Error; err != nil {
		return GetJobQueryResponse{}, dberr.Translate(err, "job", id)
	}
	if res.BillsOfLading == nil {
		res.BillsOfLading = []BillOfLadingResponse{}
	}
	res.TotalBLs = max(len(res.BillsOfLading), 1)

	var delivered int64
	if err = db.Raw(`
		SELECT COUNT(DISTINCT s.bl_number)
		FROM delivery_note_items AS i
		JOIN clearance_schedules AS s ON s.id = i.schedule_id
		WHERE i.job_id = ? AND s.bl_number <> ''`, id).
		Scan(&delivered).Error; err != nil {
		return GetJobQueryResponse{}, dberr.Translate(err, "job", id)
	}
	res.DeliveredBLs = min(int(delivered), res.TotalBLs)

	var payments []paymentRow
	if err = db.Table("job_payments").
		Select("type, status, amount").
		Where("job_id = ?", id).
		Scan(&payments).Error; err != nil {
		return GetJobQueryResponse{}, dberr.Translate(err, "job", id)
	}
	res.Payments = summarize(payments)

	return res, nil
}

func summarize(rows []paymentRow) PaymentSummary {
	s := PaymentSummary{
		Count:             len(rows),
		PaidAmount:        decimal.Zero,
		OutstandingAmount: decimal.Zero,
		ByStatus:          make(map[string]int),
	}
	for _, r := range rows {
		s.ByStatus[r.Status]++
		switch {
		case r.Status == payment.NoPayment.String() || r.Type == payment.NoPaymentType:
			s.NoPayment++
		case r.Status == payment.Paid.String():
			s.Paid++
			s.PaidAmount = s.PaidAmount.Add(r.Amount)
		default:
			s.Outstanding++
			s.OutstandingAmount = s.OutstandingAmount.Add(r.Amount)
		}
	}
	return s
}
