package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"cinebook/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type mockMaintenance struct {
	reconciles atomic.Int32
	cleanups   atomic.Int32
	err        error
}

func (m *mockMaintenance) ReconcileSeatCounters(ctx context.Context) (int64, error) {
	m.reconciles.Add(1)
	return 0, m.err
}

func (m *mockMaintenance) CleanExpiredSessions(ctx context.Context) (int64, error) {
	m.cleanups.Add(1)
	return 3, m.err
}

func TestNewScheduler_SkipsDisabledJobs(t *testing.T) {
	s, err := NewScheduler(&mockMaintenance{}, utils.SchedulerConfig{
		Enabled:           true,
		ReconcileInterval: time.Minute,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Shutdown() })

	jobs := s.inner.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "reconcile-seat-counters", jobs[0].Name())
}

func TestScheduler_RunsJobs(t *testing.T) {
	m := &mockMaintenance{}
	s, err := NewScheduler(m, utils.SchedulerConfig{
		Enabled:           true,
		ReconcileInterval: 20 * time.Millisecond,
		SessionCleanup:    20 * time.Millisecond,
	}, zap.NewNop())
	require.NoError(t, err)

	s.Start()
	assert.Eventually(t, func() bool {
		return m.reconciles.Load() > 0 && m.cleanups.Load() > 0
	}, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Shutdown())
}

func TestRunner_LogsFailure(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := &Scheduler{log: zap.New(core)}
	m := &mockMaintenance{err: errors.New("deadlock detected")}

	s.runner("clean-expired-sessions", m.CleanExpiredSessions)()

	failed := logs.FilterMessage("Job failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "clean-expired-sessions", failed[0].ContextMap()["job"])
	assert.Equal(t, int32(1), m.cleanups.Load())
}
