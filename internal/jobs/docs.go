// Package jobs provides scheduled background tasks for the order broker.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Runs every second to dispatch pending outbox messages
// to their push recipients and write the durable notification records.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(outboxRelayJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failing message is marked failed with a bounded attempt counter and
// never blocks the rest of the batch; tick-level errors are logged and the
// next tick retries from the pending set.
package jobs
