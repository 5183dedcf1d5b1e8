package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrCompleteJobCommandIsNotConstructed = errors.New(
	"CompleteJobCommand must be created via NewCompleteJobCommand constructor",
)

type CompleteJobCommand struct {
	jobID kernel.SequenceID
	actor kernel.Actor

	guard guard.ConstructorGuard
}

func NewCompleteJobCommand(jobID kernel.SequenceID, actor kernel.Actor) (CompleteJobCommand, error) {
	if err := errors.Join(jobID.Validate(), actor.Validate()); err != nil {
		return CompleteJobCommand{}, err
	}
	return CompleteJobCommand{jobID: jobID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteJobCommand) Validate() error {
	return c.guard.Validate(ErrCompleteJobCommandIsNotConstructed)
}

func (c CompleteJobCommand) JobID() kernel.SequenceID { return c.jobID }
func (c CompleteJobCommand) Actor() kernel.Actor      { return c.actor }
