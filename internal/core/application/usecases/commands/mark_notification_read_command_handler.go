package commands

import (
	"context"
	"fmt"

	"freight/internal/core/ports"
	"freight/internal/pkg/clock"
)

type MarkNotificationReadCommandHandler struct {
	inbox ports.NotificationInbox
	clock clock.Clock
}

func NewMarkNotificationReadCommandHandler(inbox ports.NotificationInbox, clk clock.Clock) (MarkNotificationReadCommandHandler, error) {
	if inbox == nil {
		return MarkNotificationReadCommandHandler{}, fmt.Errorf("notification inbox is nil")
	}
	if clk == nil {
		return MarkNotificationReadCommandHandler{}, fmt.Errorf("clock is nil")
	}
	return MarkNotificationReadCommandHandler{inbox: inbox, clock: clk}, nil
}

func (h MarkNotificationReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationReadCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.inbox.MarkRead(ctx, cmd.Actor().Role(), cmd.NotificationID(), h.clock.Now())
}
