package jobs

import (
	"context"
	"log/slog"
	"time"

	"backoffice/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultReconcileSchedule runs the reconciliation every 30 seconds.
const DefaultReconcileSchedule = "*/30 * * * * *"

// ReconcileRidersHandler runs one reconciliation pass.
type ReconcileRidersHandler interface {
	Handle(ctx context.Context, command commands.ReconcileRidersCommand) (int, error)
}

// RiderReconciliationJob periodically recomputes the status of every busy or
// available rider. A run that is still going when the next one is due makes the
// next one skip.
type RiderReconciliationJob struct {
	handler  ReconcileRidersHandler
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewRiderReconciliationJob creates the job. schedule is a cron expression with a
// seconds field; each run is bounded by timeout.
func NewRiderReconciliationJob(
	handler ReconcileRidersHandler,
	schedule string,
	timeout time.Duration,
	logger *slog.Logger,
) *RiderReconciliationJob {
	return &RiderReconciliationJob{
		handler:  handler,
		schedule: schedule,
		timeout:  timeout,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "rider_reconciliation_job"),
	}
}

// Start schedules the job. It fails for invalid cron expressions.
func (j *RiderReconciliationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Rider reconciliation job started", "schedule", j.schedule)
	return nil
}

// Run executes one reconciliation pass and logs its result.
func (j *RiderReconciliationJob) Run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	changed, err := j.handler.Handle(ctx, commands.NewReconcileRidersCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Rider reconciliation failed", "changed", changed, "error", err)
		return
	}
	if changed > 0 {
		j.logger.InfoContext(ctx, "Rider statuses reconciled", "changed", changed)
	}
}

// Stop unschedules the job and waits for a running pass to finish.
func (j *RiderReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Rider reconciliation job stopped")
}
