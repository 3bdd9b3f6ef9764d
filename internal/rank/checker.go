package rank

import (
	"context"
	"log/slog"
	"time"

	"tuberank/internal/metrics"
	"tuberank/internal/models"
)

// VideoStore is the tracked-video read capability the runner needs.
type VideoStore interface {
	GetActiveTrackedVideos(ctx context.Context) ([]models.TrackedVideo, error)
	CountActiveTrackedVideos(ctx context.Context) (int64, error)
}

// HistoryStore is the append-only rank history capability.
type HistoryStore interface {
	InsertRankHistory(ctx context.Context, h *models.RankHistory) error
	CountRankHistory(ctx context.Context) (int64, error)
	CountRankHistorySince(ctx context.Context, t time.Time) (int64, error)
	LatestCheckTime(ctx context.Context) (*time.Time, error)
}

// Checker runs rank checks over all active tracked videos. Each
// (video, keyword) pair is an independent unit of work: one failed check
// is counted and skipped, never aborting the rest of the run. *db.DB
// satisfies both store interfaces.
type Checker struct {
	videos  VideoStore
	history HistoryStore
	lookup  *Lookup

	// delay paces successful checks against external rate limits.
	// Zero disables pacing (used by tests).
	delay time.Duration

	now func() time.Time
}

// NewChecker creates a rank checker.
func NewChecker(videos VideoStore, history HistoryStore, lookup *Lookup, delay time.Duration) *Checker {
	return &Checker{
		videos:  videos,
		history: history,
		lookup:  lookup,
		delay:   delay,
		now:     time.Now,
	}
}

// RunDailyChecks checks every target keyword of every active tracked
// video, appending one history record per successful check, and returns
// the aggregate run summary. The tracked-video set is read once at the
// start of the run; videos added mid-run are picked up next time. Videos
// are processed sequentially in stable order so each video's keyword set
// forms one contiguous block in the logs.
func (c *Checker) RunDailyChecks(ctx context.Context) (models.RunSummary, error) {
	var summary models.RunSummary

	videos, err := c.videos.GetActiveTrackedVideos(ctx)
	if err != nil {
		return summary, err
	}
	if len(videos) == 0 {
		slog.Info("rank check: no tracked videos, skipping run")
		return summary, nil
	}

	slog.Info("rank check run started", "videos", len(videos))

	for _, video := range videos {
		slog.Info("checking ranks", "video_id", video.VideoID, "title", video.VideoTitle, "keywords", len(video.TargetKeywords))

		for _, keyword := range video.TargetKeywords {
			summary.TotalChecks++

			obs, err := c.lookup.FindRank(ctx, video.VideoID, keyword)
			if err != nil {
				summary.FailedChecks++
				metrics.RecordRankCheck("failed")
				slog.Warn("rank check failed", "video_id", video.VideoID, "keyword", keyword, "error", err)
				continue
			}

			record := &models.RankHistory{
				VideoID:        video.VideoID,
				Keyword:        keyword,
				Position:       obs.Position,
				TotalResults:   obs.TotalResults,
				TopCompetitors: obs.TopCompetitors,
				CheckedAt:      c.now(),
			}
			if err := c.history.InsertRankHistory(ctx, record); err != nil {
				summary.FailedChecks++
				metrics.RecordRankCheck("failed")
				slog.Warn("rank record insert failed", "video_id", video.VideoID, "keyword", keyword, "error", err)
				continue
			}

			summary.SuccessfulChecks++
			metrics.RecordRankCheck("successful")

			if c.delay > 0 {
				time.Sleep(c.delay)
			}
		}
	}

	slog.Info("rank check run finished",
		"total", summary.TotalChecks,
		"successful", summary.SuccessfulChecks,
		"failed", summary.FailedChecks)

	return summary, nil
}

// Stats returns read-only aggregates about tracked videos and recent
// checks, for health and observability reporting.
func (c *Checker) Stats(ctx context.Context) (models.RankCheckStats, error) {
	var stats models.RankCheckStats

	tracked, err := c.videos.CountActiveTrackedVideos(ctx)
	if err != nil {
		return stats, err
	}
	total, err := c.history.CountRankHistory(ctx)
	if err != nil {
		return stats, err
	}
	recent, err := c.history.CountRankHistorySince(ctx, c.now().Add(-24*time.Hour))
	if err != nil {
		return stats, err
	}
	last, err := c.history.LatestCheckTime(ctx)
	if err != nil {
		return stats, err
	}

	stats.TotalTrackedVideos = tracked
	stats.TotalRankRecords = total
	stats.RecentChecks = recent
	stats.LastCheckTime = last
	return stats, nil
}
