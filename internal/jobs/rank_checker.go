package jobs

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"tuberank/internal/models"
)

// Runner executes one full rank-checking pass.
type Runner interface {
	RunDailyChecks(ctx context.Context) (models.RunSummary, error)
}

// RankScheduler triggers rank-checking runs on a fixed interval. At most
// one run is in flight at a time: if a tick fires while the previous run
// is still going, the tick is skipped and logged rather than queued.
type RankScheduler struct {
	runner   Runner
	interval time.Duration

	running atomic.Bool
}

// NewRankScheduler creates a scheduler for the given runner.
func NewRankScheduler(runner Runner, interval time.Duration) *RankScheduler {
	return &RankScheduler{
		runner:   runner,
		interval: interval,
	}
}

// Start begins the scheduling loop. It runs one pass immediately, then
// one per interval, and returns when ctx is cancelled.
func (s *RankScheduler) Start(ctx context.Context) {
	slog.Info("rank scheduler started", "interval", s.interval)

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("rank scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// TriggerNow runs a pass immediately, for the manual run endpoint. It
// returns false without running if a pass is already in flight.
func (s *RankScheduler) TriggerNow(ctx context.Context) (models.RunSummary, bool, error) {
	if !s.running.CompareAndSwap(false, true) {
		return models.RunSummary{}, false, nil
	}
	defer s.running.Store(false)

	summary, err := s.runner.RunDailyChecks(ctx)
	return summary, true, err
}

func (s *RankScheduler) runOnce(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		slog.Warn("rank scheduler: previous run still in progress, skipping tick")
		return
	}
	defer s.running.Store(false)

	start := time.Now()
	summary, err := s.runner.RunDailyChecks(ctx)
	if err != nil {
		slog.Error("rank scheduler: run failed", "error", err)
		return
	}

	slog.Info("rank scheduler: run complete",
		"total", summary.TotalChecks,
		"successful", summary.SuccessfulChecks,
		"failed", summary.FailedChecks,
		"duration", time.Since(start).Round(time.Millisecond))
}
