package jobs

import (
	"context"
	"log/slog"

	"freight/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultRelaySchedule runs the relay every 30 seconds.
const DefaultRelaySchedule = "*/30 * * * * *"

// OutboxRelayHandler is the use case the relay job drives.
type OutboxRelayHandler interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (commands.RelayOutboxResult, error)
}

// OutboxRelayJob re-delivers outbox records whose post-commit dispatch
// failed or never ran.
type OutboxRelayJob struct {
	handler  OutboxRelayHandler
	command  commands.RelayOutboxCommand
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOutboxRelayJob creates the relay. schedule is a cron spec with a
// seconds field; empty means DefaultRelaySchedule.
func NewOutboxRelayJob(
	handler OutboxRelayHandler,
	command commands.RelayOutboxCommand,
	schedule string,
	logger *slog.Logger,
) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultRelaySchedule
	}
	return &OutboxRelayJob{
		handler:  handler,
		command:  command,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "outbox_relay_job"),
	}
}

func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single relay pass.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) {
	result, err := j.handler.Handle(ctx, j.command)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay failed", "error", err)
		return
	}
	if result.Pending == 0 {
		return
	}

	level := slog.LevelInfo
	if result.Delivered < result.Pending {
		level = slog.LevelWarn
	}
	j.logger.Log(ctx, level, "Outbox relay pass finished", "pending", result.Pending, "delivered", result.Delivered)
}

// Stop waits for a running pass to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
