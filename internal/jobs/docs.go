// Package jobs provides scheduled background tasks for the back office.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// RiderReconciliationJob recomputes busy/available rider statuses from their active
// orders. It repairs riders left behind by a failed best-effort status write and by
// deliveries completed in the rider app.
//
// # Usage
//
//	job := jobs.NewRiderReconciliationJob(reconcileHandler, jobs.DefaultReconcileSchedule, 20*time.Second, logger)
//	jobManager := jobs.NewJobManager(job)
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are cron expressions with a leading seconds field, e.g. "*/30 * * * * *".
package jobs
