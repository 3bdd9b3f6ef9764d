package api

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v3"

	"tuberank/internal/models"
	"tuberank/internal/validation"
)

// MetadataGenerator produces upload metadata for a topic.
type MetadataGenerator interface {
	Generate(ctx context.Context, topic string) (*models.VideoMetadata, error)
}

// MetadataHandler serves AI metadata generation requests.
type MetadataHandler struct {
	generator MetadataGenerator
}

// NewMetadataHandler creates a metadata handler.
func NewMetadataHandler(generator MetadataGenerator) *MetadataHandler {
	return &MetadataHandler{generator: generator}
}

// Generate produces titles, a description and hashtags for a topic.
func (h *MetadataHandler) Generate(c fiber.Ctx) error {
	var body struct {
		Topic string `json:"topic"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	body.Topic = strings.TrimSpace(body.Topic)
	if !validation.ValidateTopic(body.Topic) {
		return jsonError(c, fiber.StatusBadRequest, "topic is required and must be at most 500 characters")
	}

	meta, err := h.generator.Generate(c.Context(), body.Topic)
	if err != nil {
		return jsonError(c, fiber.StatusBadGateway, "metadata generation failed")
	}

	return jsonSuccess(c, meta)
}
