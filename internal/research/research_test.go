package research

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"tuberank/internal/models"
	"tuberank/internal/scoring"
)

// fakeSource serves canned suggestions and search stats, with optional
// per-keyword failures.
type fakeSource struct {
	suggestions []string
	suggestErr  error
	stats       map[string]*models.SearchStats
	failOn      map[string]error
}

func (f *fakeSource) Suggest(ctx context.Context, seed string) ([]string, error) {
	return f.suggestions, f.suggestErr
}

func (f *fakeSource) Search(ctx context.Context, keyword string, maxResults int) (*models.SearchStats, error) {
	if err, ok := f.failOn[keyword]; ok {
		return nil, err
	}
	if s, ok := f.stats[keyword]; ok {
		return s, nil
	}
	return &models.SearchStats{}, nil
}

func defaultStats() *models.SearchStats {
	return &models.SearchStats{
		TotalResults: 1_000_000,
		Items: []models.VideoStats{
			{PublishedAt: time.Now().AddDate(0, 0, -30), ViewCount: 90_000, LikeCount: 4_000, CommentCount: 200},
			{PublishedAt: time.Now().AddDate(0, 0, -400), ViewCount: 2_500_000, LikeCount: 80_000, CommentCount: 3_000},
		},
	}
}

func TestResearchOrderAndBounds(t *testing.T) {
	suggestions := []string{"gaming", "gaming pc", "gaming chair"}
	src := &fakeSource{
		suggestions: suggestions,
		stats: map[string]*models.SearchStats{
			"gaming":       defaultStats(),
			"gaming pc":    defaultStats(),
			"gaming chair": {TotalResults: 4_000, Items: nil},
		},
	}
	svc := New(src, 10, scoring.DefaultBenchmarks)

	got, err := svc.Research(context.Background(), "gaming")
	if err != nil {
		t.Fatalf("Research() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Research() returned %d keywords, want 3", len(got))
	}
	for i, sk := range got {
		if sk.Keyword != suggestions[i] {
			t.Errorf("result[%d].Keyword = %q, want %q (suggestion order preserved)", i, sk.Keyword, suggestions[i])
		}
		if sk.Competition < 0 || sk.Competition > 100 {
			t.Errorf("result[%d].Competition = %d, out of [0,100]", i, sk.Competition)
		}
		if sk.Demand < 0 || sk.Demand > 100 {
			t.Errorf("result[%d].Demand = %d, out of [0,100]", i, sk.Demand)
		}
	}
}

func TestResearchEmptySeed(t *testing.T) {
	svc := New(&fakeSource{}, 10, scoring.DefaultBenchmarks)

	if _, err := svc.Research(context.Background(), "   "); !errors.Is(err, ErrEmptySeed) {
		t.Errorf("Research(blank seed) error = %v, want ErrEmptySeed", err)
	}
}

func TestResearchNoSuggestions(t *testing.T) {
	svc := New(&fakeSource{suggestions: nil}, 10, scoring.DefaultBenchmarks)

	got, err := svc.Research(context.Background(), "zxqjv")
	if err != nil {
		t.Fatalf("Research() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Research() = %v, want empty result for no suggestions", got)
	}
}

func TestResearchStrictFailsWhole(t *testing.T) {
	src := &fakeSource{
		suggestions: []string{"a", "b", "c"},
		stats:       map[string]*models.SearchStats{"a": defaultStats(), "c": defaultStats()},
		failOn:      map[string]error{"b": fmt.Errorf("quota exceeded")},
	}
	svc := New(src, 10, scoring.DefaultBenchmarks)

	_, err := svc.Research(context.Background(), "seed")
	if err == nil {
		t.Fatal("Research() error = nil, want failure when one suggestion fails")
	}

	var ke *KeywordError
	if !errors.As(err, &ke) {
		t.Fatalf("Research() error = %v, want *KeywordError", err)
	}
	if ke.Keyword != "b" {
		t.Errorf("KeywordError.Keyword = %q, want %q", ke.Keyword, "b")
	}
}

func TestResearchPartialIsolatesFailures(t *testing.T) {
	src := &fakeSource{
		suggestions: []string{"a", "b", "c"},
		stats:       map[string]*models.SearchStats{"a": defaultStats(), "c": defaultStats()},
		failOn:      map[string]error{"b": fmt.Errorf("quota exceeded")},
	}
	svc := New(src, 10, scoring.DefaultBenchmarks)

	scored, failures, err := svc.ResearchPartial(context.Background(), "seed")
	if err != nil {
		t.Fatalf("ResearchPartial() error = %v", err)
	}
	if len(scored) != 2 {
		t.Fatalf("ResearchPartial() returned %d keywords, want 2", len(scored))
	}
	if scored[0].Keyword != "a" || scored[1].Keyword != "c" {
		t.Errorf("ResearchPartial() order = [%s, %s], want [a, c]", scored[0].Keyword, scored[1].Keyword)
	}
	if len(failures) != 1 || failures[0].Keyword != "b" {
		t.Errorf("ResearchPartial() failures = %v, want one failure for b", failures)
	}
}

func TestResearchPartialAllFailed(t *testing.T) {
	src := &fakeSource{
		suggestions: []string{"a", "b"},
		failOn: map[string]error{
			"a": fmt.Errorf("down"),
			"b": fmt.Errorf("down"),
		},
	}
	svc := New(src, 10, scoring.DefaultBenchmarks)

	scored, failures, err := svc.ResearchPartial(context.Background(), "seed")
	if err == nil {
		t.Fatal("ResearchPartial() error = nil, want error when every analysis fails")
	}
	if len(scored) != 0 {
		t.Errorf("ResearchPartial() scored = %v, want none", scored)
	}
	if len(failures) != 2 {
		t.Errorf("ResearchPartial() failures = %d, want 2", len(failures))
	}
}

func TestResearchSuggestFailure(t *testing.T) {
	src := &fakeSource{suggestErr: fmt.Errorf("upstream down")}
	svc := New(src, 10, scoring.DefaultBenchmarks)

	if _, err := svc.Research(context.Background(), "seed"); err == nil {
		t.Fatal("Research() error = nil, want error when suggestion fetch fails")
	}
}
