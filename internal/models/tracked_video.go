package models

import (
	"time"

	"github.com/google/uuid"
)

// TrackedVideo represents a video under continuous rank surveillance
// across a set of target keywords.
type TrackedVideo struct {
	ID             uuid.UUID `json:"id"`
	VideoID        string    `json:"video_id"`
	ChannelID      string    `json:"channel_id"`
	VideoTitle     string    `json:"video_title"`
	ChannelTitle   string    `json:"channel_title"`
	TargetKeywords []string  `json:"target_keywords"`
	VideoURL       string    `json:"video_url"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
