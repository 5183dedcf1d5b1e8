package queries

import (
	"errors"
	"strings"
	"time"

	"freight/internal/core/domain/model/clearance"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrListClearanceSchedulesQueryIsNotConstructed = errors.New(
	"ListClearanceSchedulesQuery must be created via NewListClearanceSchedulesQuery constructor",
)

// ListClearanceSchedulesQuery lists schedules that no delivery note references
// yet. Every filter is optional.
//
// Example:
//
//	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
//	query, _ := NewListClearanceSchedulesQuery(&from, nil, "Pasir Panjang")
//	schedules, err := handler.Handle(ctx, query)
type ListClearanceSchedulesQuery struct {
	from *time.Time
	to   *time.Time
	port string

	guard guard.ConstructorGuard
}

func NewListClearanceSchedulesQuery(from, to *time.Time, port string) (ListClearanceSchedulesQuery, error) {
	q := ListClearanceSchedulesQuery{port: strings.TrimSpace(port), guard: guard.NewConstructorGuard()}
	if from != nil {
		d := clearance.Day(*from)
		q.from = &d
	}
	if to != nil {
		d := clearance.Day(*to)
		q.to = &d
	}
	if q.from != nil && q.to != nil && q.to.Before(*q.from) {
		return ListClearanceSchedulesQuery{}, errs.NewValueIsInvalidError("date range")
	}
	return q, nil
}

func (q ListClearanceSchedulesQuery) Validate() error {
	return q.guard.Validate(ErrListClearanceSchedulesQueryIsNotConstructed)
}

func (q ListClearanceSchedulesQuery) From() *time.Time { return q.from }
func (q ListClearanceSchedulesQuery) To() *time.Time   { return q.to }
func (q ListClearanceSchedulesQuery) Port() string     { return q.port }

// ClearanceScheduleResponse is one active schedule with the counterpart names
// of its job. ConsigneeCodeMatched is set when the code was resolved from the
// consignee name rather than stored on the job.
type ClearanceScheduleResponse struct {
	ID                   string    `json:"id"`
	JobID                string    `json:"jobId"`
	BLNumber             string    `json:"blNumber"`
	PlannedDate          time.Time `json:"plannedDate"`
	Port                 string    `json:"port"`
	Method               string    `json:"method"`
	RescheduleCount      int       `json:"rescheduleCount"`
	Customer             string    `json:"customer"`
	Consignee            string    `json:"consignee"`
	ConsigneeCode        string    `json:"consigneeCode,omitempty"`
	ConsigneeCodeMatched bool      `json:"consigneeCodeMatched"`
}
