package models

import "time"

// VideoStats holds the per-video engagement statistics used by the
// scoring functions. Counts are normalized to non-negative integers at
// the adapter boundary.
type VideoStats struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	ChannelTitle string    `json:"channel_title"`
	Description  string    `json:"description"`
	PublishedAt  time.Time `json:"published_at"`
	ViewCount    int64     `json:"view_count"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
}

// SearchStats is the typed result of one keyword search: the estimated
// total result count plus the top results in ranking order.
type SearchStats struct {
	TotalResults int64        `json:"total_results"`
	Items        []VideoStats `json:"items"`
}

// ScoredKeyword is the output of keyword research: a suggestion enriched
// with bounded competition and demand scores. Not persisted.
type ScoredKeyword struct {
	Keyword     string `json:"keyword"`
	Competition int    `json:"competition"`
	Demand      int    `json:"demand"`
}
