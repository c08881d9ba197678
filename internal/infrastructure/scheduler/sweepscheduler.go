package scheduler

import (
	"context"
	"sync"
	"time"

	memberUsecases "pulsefit/internal/application/member/usecases"
	"pulsefit/internal/shared/logger"
)

// SweepScheduler runs the expiry sweep on a fixed interval.
// The sweep itself is idempotent and guarded by a distributed lock, so the
// scheduler can run on every instance; only one run does the work.
type SweepScheduler struct {
	sweepUC  *memberUsecases.ExpirySweepUseCase
	pageSize int
	interval time.Duration
	logger   logger.Interface
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewSweepScheduler(
	sweepUC *memberUsecases.ExpirySweepUseCase,
	interval time.Duration,
	pageSize int,
	logger logger.Interface,
) *SweepScheduler {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &SweepScheduler{
		sweepUC:  sweepUC,
		pageSize: pageSize,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start launches the scheduler loop.
func (s *SweepScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting expiry sweep scheduler", "interval", s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx)
	}()
}

// Stop stops the scheduler gracefully.
func (s *SweepScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping expiry sweep scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("expiry sweep scheduler stopped")
	})
}

func (s *SweepScheduler) runLoop(ctx context.Context) {
	// Run once on startup so a restarted instance catches up immediately.
	s.runSweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("expiry sweep scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.runSweep(ctx)
		}
	}
}

func (s *SweepScheduler) runSweep(ctx context.Context) {
	startTime := time.Now()

	report, err := s.sweepUC.Execute(ctx, memberUsecases.ExpirySweepCommand{PageSize: s.pageSize})
	if err != nil {
		s.logger.Errorw("scheduled expiry sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	s.logger.Infow("scheduled expiry sweep finished",
		"updated", report.UpdatedCount,
		"notified", report.Notified,
		"failed", report.Failed,
		"skipped", report.Skipped,
		"duration", time.Since(startTime),
	)
}
