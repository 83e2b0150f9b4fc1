package usecase

import (
	"context"
	"fmt"
	"time"

	"cinebook/internal/data/repository"

	"go.uber.org/zap"
)

// sessionRetention is how long expired or revoked sessions are kept before
// the cleanup job removes them.
const sessionRetention = 24 * time.Hour

// MaintenanceService holds the periodic housekeeping run by the scheduler.
type MaintenanceService interface {
	ReconcileSeatCounters(ctx context.Context) (int64, error)
	CleanExpiredSessions(ctx context.Context) (int64, error)
}

type maintenanceService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMaintenanceService(repo *repository.Repository, log *zap.Logger) MaintenanceService {
	return &maintenanceService{
		repo: repo,
		log:  log.With(zap.String("service", "maintenance")),
	}
}

// ReconcileSeatCounters rewrites available_seats from the seat rows for any
// showtime whose counter drifted.
func (s *maintenanceService) ReconcileSeatCounters(ctx context.Context) (int64, error) {
	fixed, err := s.repo.Showtime.ReconcileAvailableSeats(ctx)
	if err != nil {
		return 0, fmt.Errorf("reconcile seat counters: %w", err)
	}

	if fixed > 0 {
		s.log.Warn("Corrected drifted seat counters", zap.Int64("showtimes", fixed))
	}
	return fixed, nil
}

func (s *maintenanceService) CleanExpiredSessions(ctx context.Context) (int64, error) {
	removed, err := s.repo.Session.CleanExpiredSessions(ctx, sessionRetention)
	if err != nil {
		return 0, fmt.Errorf("clean expired sessions: %w", err)
	}

	s.log.Debug("Expired sessions cleaned", zap.Int64("removed", removed))
	return removed, nil
}
