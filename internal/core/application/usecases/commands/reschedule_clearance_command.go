package commands

import (
	"errors"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrRescheduleClearanceCommandIsNotConstructed = errors.New(
	"RescheduleClearanceCommand must be created via NewRescheduleClearanceCommand constructor",
)

type RescheduleClearanceCommand struct {
	scheduleID kernel.UUID
	newDate    time.Time
	reason     string
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

func NewRescheduleClearanceCommand(scheduleID kernel.UUID, newDate time.Time, reason string, actor kernel.Actor) (RescheduleClearanceCommand, error) {
	if err := errors.Join(scheduleID.Validate(), actor.Validate()); err != nil {
		return RescheduleClearanceCommand{}, err
	}
	if newDate.IsZero() {
		return RescheduleClearanceCommand{}, errs.NewValueIsRequiredError("new date")
	}
	if strings.TrimSpace(reason) == "" {
		return RescheduleClearanceCommand{}, errs.NewValueIsRequiredError("reschedule reason")
	}
	return RescheduleClearanceCommand{
		scheduleID: scheduleID,
		newDate:    newDate,
		reason:     reason,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RescheduleClearanceCommand) Validate() error {
	return c.guard.Validate(ErrRescheduleClearanceCommandIsNotConstructed)
}

func (c RescheduleClearanceCommand) ScheduleID() kernel.UUID { return c.scheduleID }
func (c RescheduleClearanceCommand) NewDate() time.Time      { return c.newDate }
func (c RescheduleClearanceCommand) Reason() string          { return c.reason }
func (c RescheduleClearanceCommand) Actor() kernel.Actor     { return c.actor }
