// Package outbox delivers committed event records to the audit trail and the
// role notifier, and marks the outbox rows accordingly. Delivery never fails
// the use case that produced the records: errors are logged, counted on the
// row, and retried by the relay job.
package outbox

import (
	"context"
	"fmt"
	"log/slog"

	"freight/internal/core/domain/model/event"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"

	"golang.org/x/sync/errgroup"
)

// defaultConcurrency bounds how many records are delivered at once.
const defaultConcurrency = 4

type Dispatcher struct {
	audit       ports.AuditSink
	notifier    ports.Notifier
	outbox      ports.OutboxRepository
	clock       clock.Clock
	logger      *slog.Logger
	concurrency int
}

func NewDispatcher(
	audit ports.AuditSink,
	notifier ports.Notifier,
	outbox ports.OutboxRepository,
	clk clock.Clock,
	logger *slog.Logger,
) (*Dispatcher, error) {
	if audit == nil {
		return nil, fmt.Errorf("audit sink is nil")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier is nil")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox repository is nil")
	}
	if clk == nil {
		return nil, fmt.Errorf("clock is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		audit:       audit,
		notifier:    notifier,
		outbox:      outbox,
		clock:       clk,
		logger:      logger.With("component", "outbox_dispatcher"),
		concurrency: defaultConcurrency,
	}, nil
}

// Dispatch delivers records and reports nothing back. Failed records stay
// pending for the relay.
func (d *Dispatcher) Dispatch(ctx context.Context, records []event.Record) {
	d.Deliver(ctx, records)
}

// Deliver delivers records concurrently and returns how many were accepted
// by every sink.
func (d *Dispatcher) Deliver(ctx context.Context, records []event.Record) int {
	if len(records) == 0 {
		return 0
	}

	var g errgroup.Group
	g.SetLimit(d.concurrency)

	delivered := make([]bool, len(records))
	for i, rec := range records {
		g.Go(func() error {
			delivered[i] = d.deliver(ctx, rec)
			return nil
		})
	}
	_ = g.Wait()

	count := 0
	for _, ok := range delivered {
		if ok {
			count++
		}
	}
	return count
}

func (d *Dispatcher) deliver(ctx context.Context, rec event.Record) bool {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := d.audit.Record(gctx, rec); err != nil {
			return fmt.Errorf("audit: %w", err)
		}
		return nil
	})
	if rec.IsNotification() {
		g.Go(func() error {
			if err := d.notifier.Notify(gctx, rec); err != nil {
				return fmt.Errorf("notify %s: %w", rec.Audience, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		d.logger.ErrorContext(ctx, "event delivery failed",
			"event_id", rec.ID.String(),
			"action", string(rec.Action),
			"entity_id", rec.EntityID,
			"error", err)
		if markErr := d.outbox.MarkFailed(ctx, rec.ID, err.Error()); markErr != nil {
			d.logger.ErrorContext(ctx, "outbox row not marked failed", "event_id", rec.ID.String(), "error", markErr)
		}
		return false
	}

	if err := d.outbox.MarkDispatched(ctx, rec.ID, d.clock.Now()); err != nil {
		d.logger.ErrorContext(ctx, "outbox row not marked dispatched", "event_id", rec.ID.String(), "error", err)
		return false
	}
	return true
}
