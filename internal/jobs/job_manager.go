package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	orderExpiryJob *OrderExpiryJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	expireHandler commands.ExpirePublishedOrdersCommandHandler,
	expiryThreshold time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderExpiryJob: NewOrderExpiryJob(expireHandler, expiryThreshold, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.orderExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start order expiry job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderExpiryJob.Stop()
}
