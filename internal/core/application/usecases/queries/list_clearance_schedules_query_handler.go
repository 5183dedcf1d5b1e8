package queries

import (
	"context"
	"log/slog"
	"time"

	"freight/internal/adapters/out/postgres/dberr"
	"freight/internal/core/domain/model/consignee"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"

	"gorm.io/gorm"
)

// ListClearanceSchedulesQueryHandler reads active schedules and backfills
// missing consignee codes through the fuzzy matcher. The consignee directory
// is read only when at least one row lacks a code, and each distinct name is
// matched once per query.
type ListClearanceSchedulesQueryHandler struct {
	db         *gorm.DB
	consignees ports.ConsigneeRepository
	matcher    services.FuzzyMatcher
	logger     *slog.Logger
}

func NewListClearanceSchedulesQueryHandler(db *gorm.DB, consignees ports.ConsigneeRepository, logger *slog.Logger) ListClearanceSchedulesQueryHandler {
	return ListClearanceSchedulesQueryHandler{
		db:         db,
		consignees: consignees,
		matcher:    services.NewFuzzyMatcher(),
		logger:     logger.With("component", "list-clearance-schedules"),
	}
}

type scheduleRow struct {
	ID              string
	JobID           string
	BLNumber        string
	PlannedDate     time.Time
	Port            string
	Method          string
	RescheduleCount int
	Customer        string
	Consignee       string
	ConsigneeCode   string
}

func (h ListClearanceSchedulesQueryHandler) Handle(
	ctx context.Context,
	query ListClearanceSchedulesQuery,
) ([]ClearanceScheduleResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).
		Table("clearance_schedules AS s").
		Select(`
			s.id,
			s.job_id,
			s.bl_number,
			s.planned_date,
			s.port,
			s.method,
			s.reschedule_count,
			j.customer,
			j.consignee,
			j.consignee_code`).
		Joins("JOIN jobs AS j ON j.id = s.job_id").
		Where("NOT EXISTS (SELECT 1 FROM delivery_note_items AS i WHERE i.schedule_id = s.id)")
	if query.From() != nil {
		tx = tx.Where("s.planned_date >= ?", *query.From())
	}
	if query.To() != nil {
		tx = tx.Where("s.planned_date <= ?", *query.To())
	}
	if query.Port() != "" {
		tx = tx.Where("s.port = ?", query.Port())
	}

	var rows []scheduleRow
	if err := tx.Order("s.planned_date, s.job_id, s.bl_number").Scan(&rows).Error; err != nil {
		return nil, dberr.Translate(err, "clearance schedules", "")
	}

	result := make([]ClearanceScheduleResponse, 0, len(rows))
	for _, r := range rows {
		result = append(result, ClearanceScheduleResponse{
			ID:              r.ID,
			JobID:           r.JobID,
			BLNumber:        r.BLNumber,
			PlannedDate:     r.PlannedDate.UTC(),
			Port:            r.Port,
			Method:          r.Method,
			RescheduleCount: r.RescheduleCount,
			Customer:        r.Customer,
			Consignee:       r.Consignee,
			ConsigneeCode:   r.ConsigneeCode,
		})
	}

	h.backfillConsigneeCodes(ctx, result)
	return result, nil
}

// backfillConsigneeCodes never fails the query: a directory read error only
// leaves the codes empty.
func (h ListClearanceSchedulesQueryHandler) backfillConsigneeCodes(ctx context.Context, rows []ClearanceScheduleResponse) {
	var (
		candidates []consignee.Entry
		loaded     bool
		cache      = make(map[string]string)
	)

	for i := range rows {
		if rows[i].ConsigneeCode != "" || rows[i].Consignee == "" {
			continue
		}
		if !loaded {
			loaded = true
			entries, err := h.consignees.List(ctx)
			if err != nil {
				h.logger.WarnContext(ctx, "consignee directory unavailable", "error", err)
				return
			}
			candidates = entries
		}

		key := services.Normalize(rows[i].Consignee)
		code, seen := cache[key]
		if !seen {
			if match, ok := h.matcher.Resolve(rows[i].Consignee, candidates); ok {
				code = match.Code()
			}
			cache[key] = code
		}
		if code != "" {
			rows[i].ConsigneeCode = code
			rows[i].ConsigneeCodeMatched = true
		}
	}
}
