package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetJobQueryIsNotConstructed = errors.New(
	"GetJobQuery must be created via NewGetJobQuery constructor",
)

// GetJobQuery reads one job with its delivery and payment totals.
type GetJobQuery struct {
	jobID kernel.SequenceID

	guard guard.ConstructorGuard
}

func NewGetJobQuery(jobID kernel.SequenceID) (GetJobQuery, error) {
	if err := jobID.Validate(); err != nil {
		return GetJobQuery{}, err
	}
	return GetJobQuery{jobID: jobID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetJobQuery) Validate() error {
	return q.guard.Validate(ErrGetJobQueryIsNotConstructed)
}

func (q GetJobQuery) JobID() kernel.SequenceID { return q.jobID }

type BillOfLadingResponse struct {
	MasterNo        string `json:"masterNo"`
	HouseNo         string `json:"houseNo,omitempty"`
	Vessel          string `json:"vessel,omitempty"`
	PortOfLoading   string `json:"portOfLoading,omitempty"`
	PortOfDischarge string `json:"portOfDischarge,omitempty"`
}

// PaymentSummary totals the payments of a job. No Payment records are
// counted separately and never outstanding. ByStatus counts every payment
// under its persisted status name.
type PaymentSummary struct {
	Count             int             `json:"count"`
	Paid              int             `json:"paid"`
	Outstanding       int             `json:"outstanding"`
	NoPayment         int             `json:"noPayment"`
	PaidAmount        decimal.Decimal `json:"paidAmount"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
	ByStatus          map[string]int  `json:"byStatus"`
}

type GetJobQueryResponse struct {
	ID            string                 `json:"id"`
	Status        string                 `json:"status"`
	Progress      int                    `json:"progress"`
	Customer      string                 `json:"customer"`
	Consignee     string                 `json:"consignee,omitempty"`
	ConsigneeCode string                 `json:"consigneeCode,omitempty"`
	Exporter      string                 `json:"exporter,omitempty"`
	Shipper       string                 `json:"shipper,omitempty"`
	TotalBLs      int                    `json:"totalBLs"`
	DeliveredBLs  int                    `json:"deliveredBLs"`
	BillsOfLading []BillOfLadingResponse `json:"billsOfLading"`
	Payments      PaymentSummary         `json:"payments"`
	ClearedAt     *time.Time             `json:"clearedAt,omitempty"`
	SettledAt     *time.Time             `json:"settledAt,omitempty"`
	CompletedAt   *time.Time             `json:"completedAt,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
}
