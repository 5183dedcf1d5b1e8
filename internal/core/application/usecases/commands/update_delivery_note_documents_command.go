package commands

import (
	"errors"
	"strings"

	"freight/internal/core/domain/model/deliverynote"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrUpdateDeliveryNoteDocumentsCommandIsNotConstructed = errors.New(
	"UpdateDeliveryNoteDocumentsCommand must be created via NewUpdateDeliveryNoteDocumentsCommand constructor",
)

type UpdateDeliveryNoteDocumentsCommand struct {
	noteID        string
	documents     []deliverynote.Document
	markDelivered bool
	actor         kernel.Actor

	guard guard.ConstructorGuard
}

func NewUpdateDeliveryNoteDocumentsCommand(
	noteID string,
	documents []deliverynote.Document,
	markDelivered bool,
	actor kernel.Actor,
) (UpdateDeliveryNoteDocumentsCommand, error) {
	if err := actor.Validate(); err != nil {
		return UpdateDeliveryNoteDocumentsCommand{}, err
	}
	if strings.TrimSpace(noteID) == "" {
		return UpdateDeliveryNoteDocumentsCommand{}, errs.NewValueIsRequiredError("delivery note id")
	}
	return UpdateDeliveryNoteDocumentsCommand{
		noteID:        strings.TrimSpace(noteID),
		documents:     append([]deliverynote.Document(nil), documents...),
		markDelivered: markDelivered,
		actor:         actor,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDeliveryNoteDocumentsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryNoteDocumentsCommandIsNotConstructed)
}

func (c UpdateDeliveryNoteDocumentsCommand) NoteID() string { return c.noteID }
func (c UpdateDeliveryNoteDocumentsCommand) Documents() []deliverynote.Document {
	return append([]deliverynote.Document(nil), c.documents...)
}
func (c UpdateDeliveryNoteDocumentsCommand) MarkDelivered() bool { return c.markDelivered }
func (c UpdateDeliveryNoteDocumentsCommand) Actor() kernel.Actor { return c.actor }
