package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderExpiryJob cancels published orders that sat unclaimed past the
// threshold. Runs every minute; each run sweeps one batch.
type OrderExpiryJob struct {
	handler   commands.ExpirePublishedOrdersCommandHandler
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOrderExpiryJob creates the expiry sweep job with the configured
// unclaimed-order threshold.
func NewOrderExpiryJob(
	handler commands.ExpirePublishedOrdersCommandHandler,
	threshold time.Duration,
	logger *slog.Logger,
) *OrderExpiryJob {
	return &OrderExpiryJob{
		handler:   handler,
		threshold: threshold,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "order_expiry_job"),
	}
}

// Start begins the expiry sweep, running at the top of every minute.
func (j *OrderExpiryJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewExpirePublishedOrdersCommand(j.threshold)
		if err != nil {
			j.logger.ErrorContext(ctx, "Order expiry job misconfigured", "error", err)
			return
		}

		expired, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Order expiry job failed", "error", err)
			return
		}

		if expired > 0 {
			j.logger.InfoContext(ctx, "Expired unclaimed orders", "count", expired)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order expiry job started (running every minute)")
	return nil
}

// Stop stops the expiry job.
func (j *OrderExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order expiry job stopped")
}
