package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"tuberank/internal/models"
	"tuberank/internal/research"
)

type stubResearcher struct {
	keywords []models.ScoredKeyword
	failures []*research.KeywordError
	err      error
	calls    int
}

func (s *stubResearcher) Research(ctx context.Context, seed string) ([]models.ScoredKeyword, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.keywords, nil
}

func (s *stubResearcher) ResearchPartial(ctx context.Context, seed string) ([]models.ScoredKeyword, []*research.KeywordError, error) {
	s.calls++
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.keywords, s.failures, nil
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (m *memCache) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memCache) Set(key string, val []byte, exp time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = val
	return nil
}

func researchApp(h *KeywordHandler) *fiber.App {
	app := fiber.New()
	app.Get("/api/keywords/research", h.Research)
	return app
}

type envelope struct {
	Status string           `json:"status"`
	Error  string           `json:"error"`
	Data   researchResponse `json:"data"`
}

func decodeEnvelope(t *testing.T, body io.Reader) envelope {
	t.Helper()
	var e envelope
	if err := json.NewDecoder(body).Decode(&e); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return e
}

func TestResearchEndpoint(t *testing.T) {
	researcher := &stubResearcher{keywords: []models.ScoredKeyword{
		{Keyword: "go tutorial", Competition: 62, Demand: 71},
		{Keyword: "go basics", Competition: 40, Demand: 55},
	}}
	app := researchApp(NewKeywordHandler(researcher, nil, time.Hour))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/keywords/research?seed=go", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	e := decodeEnvelope(t, resp.Body)
	if e.Status != "ok" {
		t.Errorf("envelope status = %q, want ok", e.Status)
	}
	if len(e.Data.Keywords) != 2 {
		t.Errorf("keywords = %d, want 2", len(e.Data.Keywords))
	}
	if e.Data.Seed != "go" {
		t.Errorf("seed = %q, want go", e.Data.Seed)
	}
}

func TestResearchEndpointMissingSeed(t *testing.T) {
	app := researchApp(NewKeywordHandler(&stubResearcher{}, nil, time.Hour))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/keywords/research", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestResearchEndpointUpstreamFailure(t *testing.T) {
	researcher := &stubResearcher{err: errors.New("quota exceeded")}
	app := researchApp(NewKeywordHandler(researcher, nil, time.Hour))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/keywords/research?seed=go", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
}

func TestResearchEndpointPartial(t *testing.T) {
	researcher := &stubResearcher{
		keywords: []models.ScoredKeyword{{Keyword: "go tutorial", Competition: 62, Demand: 71}},
		failures: []*research.KeywordError{{Keyword: "go advanced", Err: errors.New("timeout")}},
	}
	app := researchApp(NewKeywordHandler(researcher, nil, time.Hour))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/keywords/research?seed=go&partial=1", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	e := decodeEnvelope(t, resp.Body)
	if len(e.Data.Keywords) != 1 {
		t.Errorf("keywords = %d, want 1", len(e.Data.Keywords))
	}
	if len(e.Data.Failed) != 1 || e.Data.Failed[0] != "go advanced" {
		t.Errorf("failed keywords = %v, want [go advanced]", e.Data.Failed)
	}
}

func TestResearchEndpointCaches(t *testing.T) {
	researcher := &stubResearcher{keywords: []models.ScoredKeyword{
		{Keyword: "go tutorial", Competition: 62, Demand: 71},
	}}
	app := researchApp(NewKeywordHandler(researcher, newMemCache(), time.Hour))

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/keywords/research?seed=go", nil))
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		e := decodeEnvelope(t, resp.Body)
		if len(e.Data.Keywords) != 1 {
			t.Fatalf("keywords = %d, want 1", len(e.Data.Keywords))
		}
	}

	if researcher.calls != 1 {
		t.Errorf("research calls = %d, want 1 (second request served from cache)", researcher.calls)
	}
}
