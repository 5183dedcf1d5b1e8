package commands

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/event"
	"freight/internal/pkg/clock"
)

// EventDeliverer delivers records and reports how many every sink accepted.
type EventDeliverer interface {
	Deliver(ctx context.Context, records []event.Record) int
}

// RelayOutboxResult summarizes one relay pass.
type RelayOutboxResult struct {
	Pending   int
	Delivered int
}

type RelayOutboxCommandHandler struct {
	uowFactory UoWFactory
	deliverer  EventDeliverer
	clock      clock.Clock
}

func NewRelayOutboxCommandHandler(uowFactory UoWFactory, deliverer EventDeliverer, clk clock.Clock) (RelayOutboxCommandHandler, error) {
	if uowFactory == nil {
		return RelayOutboxCommandHandler{}, fmt.Errorf("unit of work factory is nil")
	}
	if deliverer == nil {
		return RelayOutboxCommandHandler{}, fmt.Errorf("event deliverer is nil")
	}
	if clk == nil {
		return RelayOutboxCommandHandler{}, fmt.Errorf("clock is nil")
	}
	return RelayOutboxCommandHandler{uowFactory: uowFactory, deliverer: deliverer, clock: clk}, nil
}

// Handle reads pending rows outside a transaction; each delivery marks its
// own row.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (RelayOutboxResult, error) {
	if err := cmd.Validate(); err != nil {
		return RelayOutboxResult{}, err
	}

	olderThan := h.clock.Now().Add(-cmd.GracePeriod())
	records, err := h.uowFactory.Create().OutboxRepository().ListPending(ctx, olderThan, cmd.MaxAttempts(), cmd.Limit())
	if err != nil {
		return RelayOutboxResult{}, err
	}
	if len(records) == 0 {
		return RelayOutboxResult{}, nil
	}

	return RelayOutboxResult{
		Pending:   len(records),
		Delivered: h.deliverer.Deliver(ctx, records),
	}, nil
}
