package commands

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/deliverynote"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrCreateDeliveryNoteCommandIsNotConstructed = errors.New(
	"CreateDeliveryNoteCommand must be created via NewCreateDeliveryNoteCommand constructor",
)

// DeliveryItemInput is one line of a delivery note. ScheduleID names the
// clearance schedule whose bill of lading the line delivers.
type DeliveryItemInput struct {
	JobID      kernel.SequenceID
	ScheduleID *kernel.UUID
	Shortage   int
	Damage     int
	Remarks    string
}

type CreateDeliveryNoteCommand struct {
	items    []DeliveryItemInput
	vehicles []deliverynote.Vehicle
	dates    deliverynote.Dates
	comments string
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

// NewCreateDeliveryNoteCommand rejects an empty item list before any write.
func NewCreateDeliveryNoteCommand(
	items []DeliveryItemInput,
	vehicles []deliverynote.Vehicle,
	dates deliverynote.Dates,
	comments string,
	actor kernel.Actor,
) (CreateDeliveryNoteCommand, error) {
	if len(items) == 0 {
		return CreateDeliveryNoteCommand{}, errs.NewValueIsRequiredError("delivery note items")
	}
	if err := actor.Validate(); err != nil {
		return CreateDeliveryNoteCommand{}, err
	}
	for i, it := range items {
		if err := it.JobID.Validate(); err != nil {
			return CreateDeliveryNoteCommand{}, errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("item %d job id", i), err)
		}
		if it.Shortage < 0 || it.Damage < 0 {
			return CreateDeliveryNoteCommand{}, errs.NewValueIsOutOfRangeError(fmt.Sprintf("item %d shortage/damage", i), min(it.Shortage, it.Damage), 0, "unbounded")
		}
	}
	return CreateDeliveryNoteCommand{
		items:    append([]DeliveryItemInput(nil), items...),
		vehicles: append([]deliverynote.Vehicle(nil), vehicles...),
		dates:    dates,
		comments: comments,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDeliveryNoteCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryNoteCommandIsNotConstructed)
}

func (c CreateDeliveryNoteCommand) Items() []DeliveryItemInput {
	return append([]DeliveryItemInput(nil), c.items...)
}
func (c CreateDeliveryNoteCommand) Vehicles() []deliverynote.Vehicle {
	return append([]deliverynote.Vehicle(nil), c.vehicles...)
}
func (c CreateDeliveryNoteCommand) Dates() deliverynote.Dates { return c.dates }
func (c CreateDeliveryNoteCommand) Comments() string          { return c.comments }
func (c CreateDeliveryNoteCommand) Actor() kernel.Actor       { return c.actor }

// JobIDs lists the distinct jobs of the items, in item order.
func (c CreateDeliveryNoteCommand) JobIDs() []string {
	seen := make(map[string]struct{}, len(c.items))
	ids := make([]string, 0, len(c.items))
	for _, it := range c.items {
		id := it.JobID.String()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// ScheduleIDs lists the distinct referenced schedules.
func (c CreateDeliveryNoteCommand) ScheduleIDs() []kernel.UUID {
	seen := make(map[string]struct{}, len(c.items))
	ids := make([]kernel.UUID, 0, len(c.items))
	for _, it := range c.items {
		if it.ScheduleID == nil {
			continue
		}
		if _, ok := seen[it.ScheduleID.String()]; ok {
			continue
		}
		seen[it.ScheduleID.String()] = struct{}{}
		ids = append(ids, *it.ScheduleID)
	}
	return ids
}
