// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OrderExpiryJob - Runs every minute to cancel published orders nobody
// claimed within the configured threshold.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(expireHandler, expiryThreshold, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The expiry job treats losing a conditional update as normal operation:
// the sweep already skips orders moved by concurrent claims or cancels, so
// only infrastructure errors reach the log at error level.
package jobs
