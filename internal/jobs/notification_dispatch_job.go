package jobs

import (
	"context"
	"log/slog"

	"optistore/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// NotificationDispatchJob periodically sends pending outbox messages.
type NotificationDispatchJob struct {
	handler   commands.DispatchNotificationsCommandHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewNotificationDispatchJob creates a job that runs the dispatcher on the given
// cron schedule (with seconds field), sending at most batchSize messages per run.
func NewNotificationDispatchJob(
	handler commands.DispatchNotificationsCommandHandler,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *NotificationDispatchJob {
	return &NotificationDispatchJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "notification_dispatch_job"),
	}
}

// Start registers the dispatcher with the scheduler and starts it.
func (j *NotificationDispatchJob) Start() error {
	cmd, err := commands.NewDispatchNotificationsCommand(j.batchSize)
	if err != nil {
		return err
	}

	_, err = j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		result, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Notification dispatch job failed", "error", err)
			return
		}
		if result.Sent > 0 || result.Failed > 0 {
			j.logger.InfoContext(ctx, "Notifications dispatched", "sent", result.Sent, "failed", result.Failed)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification dispatch job started",
		"schedule", j.schedule, "batch_size", j.batchSize)
	return nil
}

// Stop stops the scheduler and waits for a running dispatch to finish.
func (j *NotificationDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification dispatch job stopped")
}
