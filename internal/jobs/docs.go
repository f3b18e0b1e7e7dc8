// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds field enabled).
//
// # Available Jobs
//
// NotificationDispatchJob drains the notification outbox: every run it sends up to
// a batch of pending messages through the configured EmailSender and records the
// outcome of each one. Runs never overlap.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(dispatchHandler, "*/10 * * * * *", 50, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failed sends are recorded on the message and retried by later runs. Errors of
// the run itself (database unavailable) are logged and the next run tries again.
package jobs
