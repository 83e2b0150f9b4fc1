package jobs

import (
	"context"
	"fmt"
	"time"

	"cinebook/internal/usecase"
	"cinebook/pkg/utils"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

const jobTimeout = 30 * time.Second

// Scheduler runs the periodic maintenance jobs.
type Scheduler struct {
	inner gocron.Scheduler
	log   *zap.Logger
}

// NewScheduler registers the seat counter reconciliation and session cleanup
// jobs. Nothing runs until Start.
func NewScheduler(maintenance usecase.MaintenanceService, config utils.SchedulerConfig, log *zap.Logger) (*Scheduler, error) {
	inner, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	s := &Scheduler{
		inner: inner,
		log:   log.With(zap.String("component", "scheduler")),
	}

	jobs := []struct {
		name     string
		interval time.Duration
		run      func(ctx context.Context) (int64, error)
	}{
		{"reconcile-seat-counters", config.ReconcileInterval, maintenance.ReconcileSeatCounters},
		{"clean-expired-sessions", config.SessionCleanup, maintenance.CleanExpiredSessions},
	}

	for _, job := range jobs {
		if job.interval <= 0 {
			s.log.Info("Job disabled", zap.String("job", job.name))
			continue
		}

		if _, err := inner.NewJob(
			gocron.DurationJob(job.interval),
			gocron.NewTask(s.runner(job.name, job.run)),
			gocron.WithName(job.name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		); err != nil {
			inner.Shutdown()
			return nil, fmt.Errorf("register job %s: %w", job.name, err)
		}
	}

	return s, nil
}

// runner wraps a maintenance call with a timeout and logging.
func (s *Scheduler) runner(name string, run func(ctx context.Context) (int64, error)) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := time.Now()
		n, err := run(ctx)
		if err != nil {
			s.log.Error("Job failed", zap.String("job", name), zap.Error(err))
			return
		}
		s.log.Debug("Job finished",
			zap.String("job", name),
			zap.Int64("rows", n),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func (s *Scheduler) Start() {
	s.inner.Start()
	s.log.Info("Scheduler started", zap.Int("jobs", len(s.inner.Jobs())))
}

func (s *Scheduler) Shutdown() error {
	return s.inner.Shutdown()
}
