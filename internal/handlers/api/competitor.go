package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	"tuberank/internal/validation"
	"tuberank/internal/youtube"
)

// TagSource looks up competitor tags and channel keywords.
type TagSource interface {
	VideoTags(ctx context.Context, videoID string) ([]string, error)
	ChannelKeywords(ctx context.Context, handle string) ([]string, error)
}

// CompetitorHandler exposes competitor tag and keyword extraction.
type CompetitorHandler struct {
	source TagSource
}

// NewCompetitorHandler creates a competitor analysis handler.
func NewCompetitorHandler(source TagSource) *CompetitorHandler {
	return &CompetitorHandler{source: source}
}

// Tags returns the tag list of a competitor's video.
func (h *CompetitorHandler) Tags(c fiber.Ctx) error {
	videoURL := c.Query("videoUrl")
	videoID := validation.ParseVideoID(videoURL)
	if videoID == "" {
		return jsonError(c, fiber.StatusBadRequest, "videoUrl must be a valid YouTube video URL")
	}

	tags, err := h.source.VideoTags(c.Context(), videoID)
	if err != nil {
		if errors.Is(err, youtube.ErrVideoNotFound) {
			return jsonError(c, fiber.StatusNotFound, "video not found")
		}
		return jsonError(c, fiber.StatusBadGateway, "failed to fetch video tags")
	}

	return jsonSuccess(c, fiber.Map{
		"video_id": videoID,
		"tags":     tags,
	})
}

// Keywords returns the channel-level keywords of a competitor's channel.
func (h *CompetitorHandler) Keywords(c fiber.Ctx) error {
	channelURL := c.Query("channelUrl")
	handle := validation.ParseChannelHandle(channelURL)
	if handle == "" {
		return jsonError(c, fiber.StatusBadRequest, "channelUrl must be a valid YouTube channel URL")
	}

	keywords, err := h.source.ChannelKeywords(c.Context(), handle)
	if err != nil {
		if errors.Is(err, youtube.ErrChannelNotFound) {
			return jsonError(c, fiber.StatusNotFound, "channel not found")
		}
		return jsonError(c, fiber.StatusBadGateway, "failed to fetch channel keywords")
	}

	return jsonSuccess(c, fiber.Map{
		"channel":  handle,
		"keywords": keywords,
	})
}
