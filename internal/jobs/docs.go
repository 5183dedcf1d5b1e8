// Package jobs provides scheduled background tasks for the freight service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OutboxRelayJob - re-delivers audit and notification records that the
// post-commit dispatch did not deliver
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	relay := jobs.NewOutboxRelayJob(relayHandler, relayCommand, cfg.OutboxRelaySchedule, logger)
//	jobManager := jobs.NewJobManager(relay)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The relay uses a six-field cron spec (with seconds), every 30 seconds by
// default. Overlapping passes are skipped.
//
// # Error Handling
//
// Relay failures are logged and retried on the next tick. Records that keep
// failing stop being picked up once they reach the configured attempt limit.
package jobs
