package commands

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/event"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"
)

// UpdateDeliveryNoteDocumentsCommandHandler replaces the attachments of a
// note and optionally marks it delivered.
type UpdateDeliveryNoteDocumentsCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.EventDispatcher
	clock      clock.Clock
}

func NewUpdateDeliveryNoteDocumentsCommandHandler(uowFactory UoWFactory, dispatcher ports.EventDispatcher, clk clock.Clock) UpdateDeliveryNoteDocumentsCommandHandler {
	return UpdateDeliveryNoteDocumentsCommandHandler{uowFactory: uowFactory, dispatcher: dispatcher, clock: clk}
}

func (h UpdateDeliveryNoteDocumentsCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryNoteDocumentsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	now := h.clock.Now()

	records, err := inTransaction(ctx, h.uowFactory, func(uow UoW) ([]event.Record, error) {
		notes := uow.DeliveryNoteRepository()
		note, err := notes.Get(ctx, cmd.NoteID())
		if err != nil {
			return nil, err
		}
		if err = note.ReplaceDocuments(cmd.Documents(), now); err != nil {
			return nil, err
		}
		delivered := cmd.MarkDelivered() && note.MarkDelivered(now)
		if err = notes.Update(ctx, note); err != nil {
			return nil, err
		}

		details := fmt.Sprintf("%d document(s) attached", len(note.Documents()))
		if delivered {
			details += ", marked delivered"
		}
		rec, err := event.NewRecord(cmd.Actor(), event.ActionDeliveryNoteUpdated, event.EntityDeliveryNote, note.ID().String(), details, now)
		if err != nil {
			return nil, err
		}
		return []event.Record{rec}, nil
	})
	if err != nil {
		return err
	}

	dispatch(ctx, h.dispatcher, records)
	return nil
}
