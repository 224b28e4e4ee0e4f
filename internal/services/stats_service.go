package services

import (
	"context"
	"fmt"
	"time"

	"github.com/maozinhas/api/internal/models"
)

// StatsService maintains the engagement counters. Increments go through the
// store's atomic field increment, and unknown workers are ignored.
type StatsService struct {
	workersRepo models.WorkerRepo
	now         func() time.Time
}

func NewStatsService(workersRepo models.WorkerRepo) *StatsService {
	return &StatsService{
		workersRepo: workersRepo,
		now:         time.Now,
	}
}

func (ss *StatsService) IncrementViews(ctx context.Context, workerId string) error {
	return ss.increment(ctx, workerId, models.StatViews)
}

func (ss *StatsService) IncrementContacts(ctx context.Context, workerId string) error {
	return ss.increment(ctx, workerId, models.StatContacts)
}

func (ss *StatsService) increment(ctx context.Context, workerId string, stat models.StatField) error {
	if err := ss.workersRepo.IncrementWorkerStat(ctx, workerId, stat, ss.now()); err != nil {
		return fmt.Errorf("failed to increment %s: %w", stat, err)
	}
	return nil
}
