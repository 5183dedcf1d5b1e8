package clearancerepo

import (
	"time"

	"freight/internal/core/domain/model/clearance"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ScheduleDTO rows are unique per job, bill of lading and planned day.
type ScheduleDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	JobID            string     `gorm:"type:varchar(32);not null;uniqueIndex:idx_schedule_day"`
	BLNumber         string     `gorm:"column:bl_number;type:varchar(64);not null;uniqueIndex:idx_schedule_day"`
	PlannedDate      time.Time  `gorm:"type:date;not null;uniqueIndex:idx_schedule_day;index"`
	ActualDate       *time.Time `gorm:"type:date"`
	Port             string     `gorm:"type:varchar(255);index"`
	Method           string     `gorm:"type:varchar(64)"`
	PreviousDate     *time.Time `gorm:"type:date"`
	RescheduleReason string     `gorm:"type:text"`
	RescheduleCount  int        `gorm:"type:int;not null;default:0"`
	CreatedBy        string     `gorm:"type:varchar(255)"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (ScheduleDTO) TableName() string {
	return "clearance_schedules"
}

func fromDomain(aggregate *clearance.Schedule) ScheduleDTO {
	return ScheduleDTO{
		ID:               aggregate.ID().Bytes(),
		JobID:            aggregate.JobID(),
		BLNumber:         aggregate.BLNumber(),
		PlannedDate:      aggregate.PlannedDate(),
		ActualDate:       aggregate.ActualDate(),
		Port:             aggregate.Port(),
		Method:           aggregate.Method(),
		PreviousDate:     aggregate.PreviousDate(),
		RescheduleReason: aggregate.RescheduleReason(),
		RescheduleCount:  aggregate.RescheduleCount(),
		CreatedBy:        aggregate.CreatedBy(),
		CreatedAt:        aggregate.CreatedAt(),
		UpdatedAt:        aggregate.UpdatedAt(),
	}
}

func changes(dto ScheduleDTO) map[string]any {
	return map[string]any{
		"planned_date":      dto.PlannedDate,
		"actual_date":       dto.ActualDate,
		"previous_date":     dto.PreviousDate,
		"reschedule_reason": dto.RescheduleReason,
		"reschedule_count":  dto.RescheduleCount,
		"updated_at":        dto.UpdatedAt,
	}
}

func toDomain(dto ScheduleDTO) (*clearance.Schedule, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	return clearance.RestoreSchedule(clearance.Snapshot{
		ID:               id,
		JobID:            dto.JobID,
		BLNumber:         dto.BLNumber,
		PlannedDate:      dto.PlannedDate,
		ActualDate:       dto.ActualDate,
		Port:             dto.Port,
		Method:           dto.Method,
		PreviousDate:     dto.PreviousDate,
		RescheduleReason: dto.RescheduleReason,
		RescheduleCount:  dto.RescheduleCount,
		CreatedBy:        dto.CreatedBy,
		CreatedAt:        dto.CreatedAt,
		UpdatedAt:        dto.UpdatedAt,
	})
}
