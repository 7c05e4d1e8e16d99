package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"medshop/internal/core/application/usecases/commands"
	"medshop/internal/pkg/errs"
	"medshop/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEscalationHandler struct {
	mock.Mock
}

func (m *mockEscalationHandler) Handle(ctx context.Context, cmd commands.EscalateOrdersCommand) (commands.EscalateOrdersResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.EscalateOrdersResult), args.Error(1)
}

var quietLogger = slog.New(slog.DiscardHandler)

func TestEscalationJob_RunCountsEscalations(t *testing.T) {
	handler := new(mockEscalationHandler)
	handler.On("Handle", mock.Anything, mock.AnythingOfType("commands.EscalateOrdersCommand")).
		Return(commands.EscalateOrdersResult{Escalated: 3, Skipped: 1}, nil).Once()
	m := metrics.NewUnregistered()
	job := NewEscalationJob(handler, "", m, quietLogger)

	job.run()

	handler.AssertExpectations(t)
	assert.InDelta(t, 3, testutil.ToFloat64(m.Escalations), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.EscalationSweeps.WithLabelValues("schedule", "ok")), 0)
}

func TestEscalationJob_RunRecordsTransientFailure(t *testing.T) {
	handler := new(mockEscalationHandler)
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(commands.EscalateOrdersResult{Escalated: 1}, errs.NewTransientStoreError("update orders", errors.New("conn reset"))).Once()
	m := metrics.NewUnregistered()
	job := NewEscalationJob(handler, "", m, quietLogger)

	job.run()

	assert.InDelta(t, 1, testutil.ToFloat64(m.Escalations), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.EscalationSweeps.WithLabelValues("schedule", "transient")), 0)
}

func TestEscalationJob_StartRejectsBadSchedule(t *testing.T) {
	job := NewEscalationJob(new(mockEscalationHandler), "every five minutes", metrics.NewUnregistered(), quietLogger)

	assert.Error(t, job.Start())
}

func TestEscalationJob_FiresOnSchedule(t *testing.T) {
	var calls atomic.Int32
	handler := new(mockEscalationHandler)
	handler.On("Handle", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { calls.Add(1) }).
		Return(commands.EscalateOrdersResult{}, nil)
	job := NewEscalationJob(handler, "* * * * * *", metrics.NewUnregistered(), quietLogger)

	require.NoError(t, job.Start())
	assert.Eventually(t, func() bool { return calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	job.Stop()
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule(DefaultEscalationSchedule))
	assert.NoError(t, ValidateSchedule("@every 1m"))

	err := ValidateSchedule("*/5 * * * *")
	assert.ErrorIs(t, err, errs.ErrConfiguration)
}

type blockingRunner struct {
	started atomic.Bool
	stopped atomic.Bool
}

func (r *blockingRunner) Run(ctx context.Context) error {
	r.started.Store(true)
	<-ctx.Done()
	r.stopped.Store(true)
	return nil
}

func TestJobManager_StartsAndStopsListener(t *testing.T) {
	handler := new(mockEscalationHandler)
	runner := &blockingRunner{}
	jm := NewJobManager(NewEscalationJob(handler, "", metrics.NewUnregistered(), quietLogger), runner, quietLogger)

	require.NoError(t, jm.StartAll())
	assert.Eventually(t, runner.started.Load, time.Second, 10*time.Millisecond)

	jm.StopAll()
	assert.True(t, runner.stopped.Load())
}

func TestJobManager_WithoutListener(t *testing.T) {
	jm := NewJobManager(NewEscalationJob(new(mockEscalationHandler), "", metrics.NewUnregistered(), quietLogger), nil, quietLogger)

	require.NoError(t, jm.StartAll())
	jm.StopAll()
}
