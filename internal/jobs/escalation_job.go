package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"medshop/internal/core/application/usecases/commands"
	"medshop/internal/pkg/errs"
	"medshop/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultEscalationSchedule runs the sweep every five minutes, on the minute.
const DefaultEscalationSchedule = "0 */5 * * * *"

// sweepTimeout bounds one scheduled sweep.
const sweepTimeout = time.Minute

type escalationHandler interface {
	Handle(ctx context.Context, cmd commands.EscalateOrdersCommand) (commands.EscalateOrdersResult, error)
}

// EscalationJob runs the escalation sweep on a cron schedule. A run that is
// still going when the next one fires makes that one skip.
type EscalationJob struct {
	handler  escalationHandler
	schedule string
	cron     *cron.Cron
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewEscalationJob(handler escalationHandler, schedule string, m *metrics.Metrics, logger *slog.Logger) *EscalationJob {
	if schedule == "" {
		schedule = DefaultEscalationSchedule
	}
	return &EscalationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		metrics:  m,
		logger:   logger.With("component", "escalation_job"),
	}
}

// ValidateSchedule reports whether spec is a cron expression with seconds.
func ValidateSchedule(spec string) error {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(spec); err != nil {
		return errs.NewConfigurationErrorWithCause("ESCALATION_SCHEDULE", err)
	}
	return nil
}

func (j *EscalationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Escalation job started", "schedule", j.schedule)
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (j *EscalationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Escalation job stopped")
}

func (j *EscalationJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	result, err := j.handler.Handle(ctx, commands.NewEscalateOrdersCommand())
	j.metrics.Escalations.Add(float64(result.Escalated))
	if err != nil {
		j.metrics.EscalationSweeps.WithLabelValues("schedule", outcome(err)).Inc()
		j.logger.ErrorContext(ctx, "Escalation sweep failed",
			"error", err,
			"escalated", result.Escalated,
			"transient", errors.Is(err, errs.ErrTransientStore))
		return
	}

	j.metrics.EscalationSweeps.WithLabelValues("schedule", "ok").Inc()
	if result.Escalated > 0 || result.Skipped > 0 {
		j.logger.InfoContext(ctx, "Escalation sweep finished",
			"escalated", result.Escalated,
			"skipped", result.Skipped)
	}
}

func outcome(err error) string {
	if errors.Is(err, errs.ErrTransientStore) {
		return "transient"
	}
	return "error"
}
