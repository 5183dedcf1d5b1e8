// Package clearance provides the ClearanceSchedule aggregate: the planned
// customs clearance of one bill of lading of a job.
package clearance

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrScheduleIsNotConstructed = errors.New("Schedule must be created via NewSchedule or RestoreSchedule")

const dateLayout = "2006-01-02"

// Day truncates t to its calendar date in UTC. Schedules are unique per
// job, bill of lading and day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Schedule is a clearance appointment. The bill of lading is referenced by its
// number as text, not by key.
type Schedule struct {
	id          kernel.UUID
	jobID       string
	blNumber    string
	plannedDate time.Time
	actualDate  *time.Time
	port        string
	method      string

	previousDate     *time.Time
	rescheduleReason string
	rescheduleCount  int

	createdBy string
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

func NewSchedule(
	id kernel.UUID,
	jobID kernel.SequenceID,
	blNumber string,
	plannedDate time.Time,
	port, method string,
	createdBy kernel.Actor,
	at time.Time,
) (*Schedule, error) {
	if err := errors.Join(id.Validate(), jobID.Validate(), createdBy.Validate()); err != nil {
		return nil, err
	}
	blNumber = strings.TrimSpace(blNumber)
	if blNumber == "" {
		return nil, errs.NewValueIsRequiredError("bill of lading number")
	}
	if plannedDate.IsZero() {
		return nil, errs.NewValueIsRequiredError("planned date")
	}
	return &Schedule{
		id:          id,
		jobID:       jobID.String(),
		blNumber:    blNumber,
		plannedDate: Day(plannedDate),
		port:        strings.TrimSpace(port),
		method:      strings.TrimSpace(method),
		createdBy:   createdBy.Name(),
		createdAt:   at,
		updatedAt:   at,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Snapshot is the persisted state of a schedule.
type Snapshot struct {
	ID               kernel.UUID
	JobID            string
	BLNumber         string
	PlannedDate      time.Time
	ActualDate       *time.Time
	Port             string
	Method           string
	PreviousDate     *time.Time
	RescheduleReason string
	RescheduleCount  int
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func RestoreSchedule(s Snapshot) (*Schedule, error) {
	if err := s.ID.Validate(); err != nil {
		return nil, err
	}
	return &Schedule{
		id:               s.ID,
		jobID:            s.JobID,
		blNumber:         s.BLNumber,
		plannedDate:      Day(s.PlannedDate),
		actualDate:       s.ActualDate,
		port:             s.Port,
		method:           s.Method,
		previousDate:     s.PreviousDate,
		rescheduleReason: s.RescheduleReason,
		rescheduleCount:  s.RescheduleCount,
		createdBy:        s.CreatedBy,
		createdAt:        s.CreatedAt,
		updatedAt:        s.UpdatedAt,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (s *Schedule) Validate() error {
	if s == nil {
		return ErrScheduleIsNotConstructed
	}
	return s.guard.Validate(ErrScheduleIsNotConstructed)
}

func (s *Schedule) ID() kernel.UUID          { return s.id }
func (s *Schedule) JobID() string            { return s.jobID }
func (s *Schedule) BLNumber() string         { return s.blNumber }
func (s *Schedule) PlannedDate() time.Time   { return s.plannedDate }
func (s *Schedule) ActualDate() *time.Time   { return s.actualDate }
func (s *Schedule) Port() string             { return s.port }
func (s *Schedule) Method() string           { return s.method }
func (s *Schedule) PreviousDate() *time.Time { return s.previousDate }
func (s *Schedule) RescheduleReason() string { return s.rescheduleReason }
func (s *Schedule) RescheduleCount() int     { return s.rescheduleCount }
func (s *Schedule) CreatedBy() string        { return s.createdBy }
func (s *Schedule) CreatedAt() time.Time     { return s.createdAt }
func (s *Schedule) UpdatedAt() time.Time     { return s.updatedAt }

// Key identifies the job, bill of lading and day a schedule occupies.
func (s *Schedule) Key() string {
	return fmt.Sprintf("%s/%s/%s", s.jobID, s.blNumber, s.plannedDate.Format(dateLayout))
}

// Reschedule moves the schedule to another day and records why.
func (s *Schedule) Reschedule(newDate time.Time, reason string, at time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reschedule reason")
	}
	if newDate.IsZero() {
		return errs.NewValueIsRequiredError("new date")
	}
	day := Day(newDate)
	if day.Equal(s.plannedDate) {
		return errs.NewValueIsInvalidErrorWithCause("new date", fmt.Errorf("schedule is already planned on %s", day.Format(dateLayout)))
	}
	previous := s.plannedDate
	s.previousDate = &previous
	s.plannedDate = day
	s.rescheduleReason = reason
	s.rescheduleCount++
	s.updatedAt = at
	return nil
}

// RecordActualDate notes the day clearance actually happened.
func (s *Schedule) RecordActualDate(day time.Time, at time.Time) {
	d := Day(day)
	s.actualDate = &d
	s.updatedAt = at
}
