package commands

import (
	"errors"
	"fmt"
	"strings"

	"freight/internal/core/domain/model/job"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrRegisterJobCommandIsNotConstructed = errors.New(
	"RegisterJobCommand must be created via NewRegisterJobCommand constructor",
)

// ContainerInput describes a container to register with a job. BLNumber is
// empty for containers that belong to the job only.
type ContainerInput struct {
	Number   string
	Kind     string
	BLNumber string
	Packages []job.Package
}

// RegisterJobCommand registers a new shipment.
type RegisterJobCommand struct {
	counterparts job.Counterparts
	bls          []job.BillOfLadingParams
	containers   []ContainerInput
	actor        kernel.Actor

	guard guard.ConstructorGuard
}

func NewRegisterJobCommand(
	counterparts job.Counterparts,
	bls []job.BillOfLadingParams,
	containers []ContainerInput,
	actor kernel.Actor,
) (RegisterJobCommand, error) {
	if err := actor.Validate(); err != nil {
		return RegisterJobCommand{}, err
	}
	if strings.TrimSpace(counterparts.Customer) == "" {
		return RegisterJobCommand{}, errs.NewValueIsRequiredError("customer")
	}
	for i, bl := range bls {
		if strings.TrimSpace(bl.MasterNo) == "" {
			return RegisterJobCommand{}, errs.NewValueIsRequiredError(fmt.Sprintf("bill of lading %d master number", i))
		}
	}
	for i, c := range containers {
		if strings.TrimSpace(c.Number) == "" {
			return RegisterJobCommand{}, errs.NewValueIsRequiredError(fmt.Sprintf("container %d number", i))
		}
	}

	return RegisterJobCommand{
		counterparts: counterparts,
		bls:          append([]job.BillOfLadingParams(nil), bls...),
		containers:   append([]ContainerInput(nil), containers...),
		actor:        actor,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterJobCommand) Validate() error {
	return c.guard.Validate(ErrRegisterJobCommandIsNotConstructed)
}

func (c RegisterJobCommand) Counterparts() job.Counterparts { return c.counterparts }
func (c RegisterJobCommand) BillsOfLading() []job.BillOfLadingParams {
	return append([]job.BillOfLadingParams(nil), c.bls...)
}
func (c RegisterJobCommand) Containers() []ContainerInput {
	return append([]ContainerInput(nil), c.containers...)
}
func (c RegisterJobCommand) Actor() kernel.Actor { return c.actor }
