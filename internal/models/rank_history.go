package models

import (
	"time"

	"github.com/google/uuid"
)

// PositionNotFound is the sentinel rank recorded when a tracked video does
// not appear within the search window for a keyword.
const PositionNotFound = 0

// Competitor is a snapshot of one video ranking near the top of a
// keyword's search results at observation time.
type Competitor struct {
	VideoID      string `json:"video_id"`
	VideoTitle   string `json:"video_title"`
	ChannelTitle string `json:"channel_title"`
	Position     int    `json:"position"`
}

// RankHistory is one immutable observation of a (video, keyword) pair's
// position. Records are append-only and never mutated after insert.
type RankHistory struct {
	ID             uuid.UUID    `json:"id"`
	VideoID        string       `json:"video_id"`
	Keyword        string       `json:"keyword"`
	Position       int          `json:"position"`
	TotalResults   int64        `json:"total_results"`
	TopCompetitors []Competitor `json:"top_competitors"`
	CheckedAt      time.Time    `json:"checked_at"`
}

// RankObservation is the result of a single rank lookup, before it is
// persisted as a RankHistory record.
type RankObservation struct {
	Position       int          `json:"position"`
	TotalResults   int64        `json:"total_results"`
	TopCompetitors []Competitor `json:"top_competitors"`
}

// RunSummary aggregates the outcome of one rank-checking run.
type RunSummary struct {
	TotalChecks      int `json:"total_checks"`
	SuccessfulChecks int `json:"successful_checks"`
	FailedChecks     int `json:"failed_checks"`
}

// RankCheckStats is a read-only aggregate exposed for health reporting.
type RankCheckStats struct {
	TotalTrackedVideos int64      `json:"total_tracked_videos"`
	TotalRankRecords   int64      `json:"total_rank_records"`
	RecentChecks       int64      `json:"recent_checks"`
	LastCheckTime      *time.Time `json:"last_check_time"`
}
