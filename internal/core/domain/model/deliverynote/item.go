package deliverynote

import (
	"errors"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// Item links a note to a job and, optionally, to the clearance schedule whose
// bill of lading it delivers.
type Item struct {
	id         kernel.UUID
	jobID      string
	scheduleID *kernel.UUID
	shortage   int
	damage     int
	remarks    string
}

func NewItem(id kernel.UUID, jobID kernel.SequenceID, scheduleID *kernel.UUID, shortage, damage int, remarks string) (Item, error) {
	if err := errors.Join(id.Validate(), jobID.Validate()); err != nil {
		return Item{}, err
	}
	if jobID.Scope() != kernel.JobScope {
		return Item{}, errs.NewValueIsInvalidError("item job id")
	}
	if scheduleID != nil {
		if err := scheduleID.Validate(); err != nil {
			return Item{}, err
		}
	}
	if shortage < 0 {
		return Item{}, errs.NewValueIsOutOfRangeError("shortage", shortage, 0, "unbounded")
	}
	if damage < 0 {
		return Item{}, errs.NewValueIsOutOfRangeError("damage", damage, 0, "unbounded")
	}
	return Item{
		id:         id,
		jobID:      jobID.String(),
		scheduleID: scheduleID,
		shortage:   shortage,
		damage:     damage,
		remarks:    strings.TrimSpace(remarks),
	}, nil
}

// RestoreItem rebuilds an item read from storage.
func RestoreItem(id kernel.UUID, jobID string, scheduleID *kernel.UUID, shortage, damage int, remarks string) Item {
	return Item{id: id, jobID: jobID, scheduleID: scheduleID, shortage: shortage, damage: damage, remarks: remarks}
}

func (i Item) ID() kernel.UUID          { return i.id }
func (i Item) JobID() string            { return i.jobID }
func (i Item) ScheduleID() *kernel.UUID { return i.scheduleID }
func (i Item) Shortage() int            { return i.shortage }
func (i Item) Damage() int              { return i.damage }
func (i Item) Remarks() string          { return i.remarks }
