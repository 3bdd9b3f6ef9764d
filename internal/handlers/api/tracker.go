package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"tuberank/internal/db"
	"tuberank/internal/models"
	"tuberank/internal/validation"
	"tuberank/internal/youtube"
)

// StatsProvider reports rank-checking aggregates.
type StatsProvider interface {
	Stats(ctx context.Context) (models.RankCheckStats, error)
}

// RunTrigger starts a rank-checking pass on demand.
type RunTrigger interface {
	TriggerNow(ctx context.Context) (models.RunSummary, bool, error)
}

// VideoDetailSource enriches placeholder titles after a video is added.
type VideoDetailSource interface {
	GetVideoDetails(ctx context.Context, videoID string) (*youtube.VideoDetails, error)
}

// TrackerHandler manages tracked videos and their rank history.
type TrackerHandler struct {
	db      *db.DB
	stats   StatsProvider
	trigger RunTrigger
	details VideoDetailSource
}

// NewTrackerHandler creates a tracker handler. details may be nil, in
// which case new videos keep their placeholder titles.
func NewTrackerHandler(database *db.DB, stats StatsProvider, trigger RunTrigger, details VideoDetailSource) *TrackerHandler {
	return &TrackerHandler{db: database, stats: stats, trigger: trigger, details: details}
}

// AddVideo starts tracking a video for one or more keywords. Tracking a
// new video returns 201; appending keywords to an existing one returns
// 200; re-adding an already tracked keyword returns 409.
func (h *TrackerHandler) AddVideo(c fiber.Ctx) error {
	var body struct {
		VideoURL string          `json:"videoUrl"`
		Keywords json.RawMessage `json:"keywords"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	videoID := validation.ParseVideoID(body.VideoURL)
	if videoID == "" {
		return jsonError(c, fiber.StatusBadRequest, "videoUrl must be a valid YouTube video URL")
	}

	keywords := parseKeywordsField(body.Keywords)
	if len(keywords) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "at least one keyword is required")
	}

	existing, err := h.db.GetTrackedVideoByVideoID(c.Context(), videoID)
	if err != nil && !errors.Is(err, db.ErrTrackedVideoNotFound) {
		return jsonError(c, fiber.StatusInternalServerError, "failed to look up tracked video")
	}

	if existing != nil {
		updated, err := h.db.AddTargetKeywords(c.Context(), videoID, keywords)
		if err != nil {
			if errors.Is(err, db.ErrDuplicateKeyword) {
				return jsonError(c, fiber.StatusConflict, "video is already tracked for one or more of these keywords")
			}
			return jsonError(c, fiber.StatusInternalServerError, "failed to add keywords")
		}
		return jsonSuccess(c, updated)
	}

	video := &models.TrackedVideo{
		VideoID:        videoID,
		ChannelID:      "placeholder",
		VideoTitle:     "placeholder",
		ChannelTitle:   "placeholder",
		TargetKeywords: keywords,
		VideoURL:       "https://www.youtube.com/watch?v=" + videoID,
		IsActive:       true,
	}
	if err := h.db.CreateTrackedVideo(c.Context(), video); err != nil {
		if errors.Is(err, db.ErrDuplicateVideo) {
			return jsonError(c, fiber.StatusConflict, "video is already being tracked")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to track video")
	}

	h.enrich(c.Context(), video)

	return jsonCreated(c, video)
}

// enrich replaces placeholder titles with real details, best effort.
func (h *TrackerHandler) enrich(ctx context.Context, video *models.TrackedVideo) {
	if h.details == nil {
		return
	}
	details, err := h.details.GetVideoDetails(ctx, video.VideoID)
	if err != nil {
		slog.Warn("tracked video enrichment failed", "video_id", video.VideoID, "error", err)
		return
	}
	if err := h.db.UpdateTrackedVideoDetails(ctx, video.VideoID, details.ChannelID, details.Title, details.ChannelTitle); err != nil {
		slog.Warn("tracked video detail update failed", "video_id", video.VideoID, "error", err)
		return
	}
	video.ChannelID = details.ChannelID
	video.VideoTitle = details.Title
	video.ChannelTitle = details.ChannelTitle
}

// parseKeywordsField accepts both a JSON array of keywords and a single
// comma-separated string.
func parseKeywordsField(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		var keywords []string
		for _, k := range list {
			if k = strings.TrimSpace(k); k != "" {
				keywords = append(keywords, k)
			}
		}
		return keywords
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return validation.SplitKeywords(s)
	}

	return nil
}

// History returns all rank observations for a tracked video, newest
// first.
func (h *TrackerHandler) History(c fiber.Ctx) error {
	videoID := c.Params("videoID")
	if !validation.IsValidVideoID(videoID) {
		return jsonError(c, fiber.StatusBadRequest, "invalid video id")
	}

	if _, err := h.db.GetTrackedVideoByVideoID(c.Context(), videoID); err != nil {
		if errors.Is(err, db.ErrTrackedVideoNotFound) {
			return jsonError(c, fiber.StatusNotFound, "tracked video not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to look up tracked video")
	}

	history, err := h.db.GetRankHistoryByVideoID(c.Context(), videoID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch rank history")
	}

	return jsonSuccess(c, fiber.Map{
		"video_id": videoID,
		"history":  history,
	})
}

// Stats returns rank-checking aggregates.
func (h *TrackerHandler) Stats(c fiber.Ctx) error {
	stats, err := h.stats.Stats(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch tracker stats")
	}
	return jsonSuccess(c, stats)
}

// Run triggers a rank-checking pass immediately.
func (h *TrackerHandler) Run(c fiber.Ctx) error {
	summary, ran, err := h.trigger.TriggerNow(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "rank check run failed")
	}
	if !ran {
		return jsonError(c, fiber.StatusConflict, "a rank check run is already in progress")
	}
	return jsonSuccess(c, summary)
}
