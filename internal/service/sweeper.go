package service

import (
	"context"
	"time"

	"gather/internal/observability"
	"gather/internal/repository"
)

// Sweeper periodically clears expired rows out of the active-post
// projection. It only ever touches the projection; expired posts stay in
// the posts table for their owners and for history.
type Sweeper struct {
	activePostRepo repository.ActivePostRepository
	interval       time.Duration
	logger         *observability.SweepLogger
}

// NewSweeper returns a sweeper that runs every interval.
func NewSweeper(activePostRepo repository.ActivePostRepository, interval time.Duration) *Sweeper {
	return &Sweeper{
		activePostRepo: activePostRepo,
		interval:       interval,
		logger:         observability.NewSweepLogger(),
	}
}

// Run sweeps on a ticker until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce removes every projection row whose expiry has passed. Per-row
// failures are logged and skipped so one bad row cannot wedge the sweep;
// the row is retried on the next cycle.
func (s *Sweeper) SweepOnce(ctx context.Context) (removed, failed int) {
	expired, err := s.activePostRepo.ListExpired(ctx, time.Now())
	if err != nil {
		s.logger.LogRowFailure(ctx, 0, err)
		return 0, 0
	}

	for _, row := range expired {
		if err := s.activePostRepo.DeleteByPostID(ctx, row.PostID); err != nil {
			failed++
			observability.SweepFailures.Inc()
			s.logger.LogRowFailure(ctx, row.PostID, err)
			continue
		}
		removed++
		observability.SweepRemovals.Inc()
	}

	s.logger.LogCycle(ctx, len(expired), removed, failed)
	return removed, failed
}
