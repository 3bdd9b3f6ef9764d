package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"tuberank/internal/metrics"
	"tuberank/internal/models"
	"tuberank/internal/research"
	"tuberank/internal/validation"
)

// Researcher runs keyword research for a seed keyword.
type Researcher interface {
	Research(ctx context.Context, seed string) ([]models.ScoredKeyword, error)
	ResearchPartial(ctx context.Context, seed string) ([]models.ScoredKeyword, []*research.KeywordError, error)
}

// Cache is the subset of the storage driver the handler uses. A nil
// cache disables caching.
type Cache interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
}

// KeywordHandler serves keyword research requests.
type KeywordHandler struct {
	research Researcher
	cache    Cache
	cacheTTL time.Duration
}

// NewKeywordHandler creates a keyword research handler.
func NewKeywordHandler(researcher Researcher, cache Cache, cacheTTL time.Duration) *KeywordHandler {
	return &KeywordHandler{research: researcher, cache: cache, cacheTTL: cacheTTL}
}

type researchResponse struct {
	Seed     string                 `json:"seed"`
	Keywords []models.ScoredKeyword `json:"keywords"`
	Failed   []string               `json:"failed_keywords,omitempty"`
}

// Research analyzes autocomplete suggestions for the seed keyword. With
// partial=1 individual keyword failures are reported alongside the
// successes instead of failing the whole request.
func (h *KeywordHandler) Research(c fiber.Ctx) error {
	seed := strings.TrimSpace(c.Query("seed"))
	if !validation.ValidateSeed(seed) {
		return jsonError(c, fiber.StatusBadRequest, "seed is required and must be at most 200 characters")
	}
	partial := c.Query("partial") == "1"

	cacheKey := researchCacheKey(seed, partial)
	if cached := h.fromCache(cacheKey); cached != nil {
		metrics.RecordResearch("cache_hit")
		return jsonSuccess(c, cached)
	}

	var resp researchResponse
	resp.Seed = seed

	if partial {
		keywords, failures, err := h.research.ResearchPartial(c.Context(), seed)
		if err != nil {
			metrics.RecordResearch("failed")
			return jsonError(c, fiber.StatusBadGateway, "keyword research failed")
		}
		resp.Keywords = keywords
		for _, f := range failures {
			resp.Failed = append(resp.Failed, f.Keyword)
		}
	} else {
		keywords, err := h.research.Research(c.Context(), seed)
		if err != nil {
			var ke *research.KeywordError
			if errors.As(err, &ke) {
				metrics.RecordResearch("failed")
				return jsonError(c, fiber.StatusBadGateway, "analysis failed for keyword: "+ke.Keyword)
			}
			metrics.RecordResearch("failed")
			return jsonError(c, fiber.StatusBadGateway, "keyword research failed")
		}
		resp.Keywords = keywords
	}

	metrics.RecordResearch("ok")
	h.toCache(cacheKey, resp)
	return jsonSuccess(c, resp)
}

func researchCacheKey(seed string, partial bool) string {
	key := "research:" + strings.ToLower(seed)
	if partial {
		key += ":partial"
	}
	return key
}

func (h *KeywordHandler) fromCache(key string) *researchResponse {
	if h.cache == nil {
		return nil
	}
	raw, err := h.cache.Get(key)
	if err != nil || len(raw) == 0 {
		return nil
	}
	var resp researchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil
	}
	return &resp
}

func (h *KeywordHandler) toCache(key string, resp researchResponse) {
	if h.cache == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := h.cache.Set(key, raw, h.cacheTTL); err != nil {
		slog.Warn("research cache write failed", "key", key, "error", err)
	}
}
