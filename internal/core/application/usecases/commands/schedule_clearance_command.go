package commands

import (
	"errors"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrScheduleClearanceCommandIsNotConstructed = errors.New(
	"ScheduleClearanceCommand must be created via NewScheduleClearanceCommand constructor",
)

type ScheduleClearanceCommand struct {
	jobID       kernel.SequenceID
	blNumber    string
	plannedDate time.Time
	port        string
	method      string
	actor       kernel.Actor

	guard guard.ConstructorGuard
}

func NewScheduleClearanceCommand(
	jobID kernel.SequenceID,
	blNumber string,
	plannedDate time.Time,
	port, method string,
	actor kernel.Actor,
) (ScheduleClearanceCommand, error) {
	if err := errors.Join(jobID.Validate(), actor.Validate()); err != nil {
		return ScheduleClearanceCommand{}, err
	}
	if strings.TrimSpace(blNumber) == "" {
		return ScheduleClearanceCommand{}, errs.NewValueIsRequiredError("bill of lading number")
	}
	if plannedDate.IsZero() {
		return ScheduleClearanceCommand{}, errs.NewValueIsRequiredError("planned date")
	}
	return ScheduleClearanceCommand{
		jobID:       jobID,
		blNumber:    strings.TrimSpace(blNumber),
		plannedDate: plannedDate,
		port:        port,
		method:      method,
		actor:       actor,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ScheduleClearanceCommand) Validate() error {
	return c.guard.Validate(ErrScheduleClearanceCommandIsNotConstructed)
}

func (c ScheduleClearanceCommand) JobID() kernel.SequenceID { return c.jobID }
func (c ScheduleClearanceCommand) BLNumber() string         { return c.blNumber }
func (c ScheduleClearanceCommand) PlannedDate() time.Time   { return c.plannedDate }
func (c ScheduleClearanceCommand) Port() string             { return c.port }
func (c ScheduleClearanceCommand) Method() string           { return c.method }
func (c ScheduleClearanceCommand) Actor() kernel.Actor      { return c.actor }
