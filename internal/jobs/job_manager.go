package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// BackgroundRunner is a long-lived loop that returns when ctx is cancelled.
type BackgroundRunner interface {
	Run(ctx context.Context) error
}

// JobManager owns the background work of the service: the escalation
// schedule and, when configured, the customer-care listener.
type JobManager struct {
	escalationJob *EscalationJob
	careListener  BackgroundRunner
	logger        *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewJobManager wires the jobs. careListener may be nil.
func NewJobManager(escalationJob *EscalationJob, careListener BackgroundRunner, logger *slog.Logger) *JobManager {
	return &JobManager{
		escalationJob: escalationJob,
		careListener:  careListener,
		logger:        logger.With("component", "job_manager"),
	}
}

func (jm *JobManager) StartAll() error {
	if err := jm.escalationJob.Start(); err != nil {
		return fmt.Errorf("failed to start escalation job: %w", err)
	}

	if jm.careListener == nil {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	jm.cancel = cancel
	jm.wg.Add(1)
	go func() {
		defer jm.wg.Done()
		if err := jm.careListener.Run(ctx); err != nil {
			jm.logger.Error("Care listener exited", "error", err)
		}
	}()
	return nil
}

// StopAll stops the schedule and the listener and waits for both.
func (jm *JobManager) StopAll() {
	jm.escalationJob.Stop()
	if jm.cancel != nil {
		jm.cancel()
	}
	jm.wg.Wait()
}
