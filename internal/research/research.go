// Package research orchestrates keyword research: autocomplete
// suggestions for a seed term, fanned out into per-keyword search
// analysis, reduced to bounded competition and demand scores.
package research

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tuberank/internal/models"
	"tuberank/internal/scoring"
)

// maxConcurrentAnalyses bounds the per-suggestion fan-out so a long
// suggestion list cannot burst the external API.
const maxConcurrentAnalyses = 4

// ErrEmptySeed is returned when the seed keyword is blank.
var ErrEmptySeed = errors.New("seed keyword must not be empty")

// Source provides suggestions and search statistics. *youtube.Client
// satisfies it.
type Source interface {
	Suggest(ctx context.Context, seed string) ([]string, error)
	Search(ctx context.Context, keyword string, maxResults int) (*models.SearchStats, error)
}

// KeywordError reports which suggestion's analysis failed.
type KeywordError struct {
	Keyword string
	Err     error
}

func (e *KeywordError) Error() string {
	return fmt.Sprintf("analyze keyword %q: %v", e.Keyword, e.Err)
}

func (e *KeywordError) Unwrap() error { return e.Err }

// Service runs the research workflow.
type Service struct {
	source     Source
	maxResults int
	benchmarks scoring.Benchmarks
	now        func() time.Time
}

// New creates a research service. maxResults is the number of top search
// results analyzed per suggestion.
func New(source Source, maxResults int, benchmarks scoring.Benchmarks) *Service {
	if maxResults <= 0 {
		maxResults = 10
	}
	return &Service{
		source:     source,
		maxResults: maxResults,
		benchmarks: benchmarks,
		now:        time.Now,
	}
}

// Research returns one scored keyword per suggestion, in suggestion order.
// Strict mode: any single suggestion's analysis failing fails the whole
// call. Callers that prefer partial results use ResearchPartial.
func (s *Service) Research(ctx context.Context, seed string) ([]models.ScoredKeyword, error) {
	suggestions, err := s.suggestions(ctx, seed)
	if err != nil || len(suggestions) == 0 {
		return nil, err
	}

	scored := make([]models.ScoredKeyword, len(suggestions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentAnalyses)
	for i, keyword := range suggestions {
		g.Go(func() error {
			sk, err := s.analyze(gctx, keyword)
			if err != nil {
				return err
			}
			scored[i] = sk
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return scored, nil
}

// ResearchPartial is the per-keyword isolation variant: failed suggestions
// are dropped from the result and reported as *KeywordError values, in
// suggestion order. The call itself fails only when the suggestion fetch
// fails or every analysis fails.
func (s *Service) ResearchPartial(ctx context.Context, seed string) ([]models.ScoredKeyword, []*KeywordError, error) {
	suggestions, err := s.suggestions(ctx, seed)
	if err != nil || len(suggestions) == 0 {
		return nil, nil, err
	}

	results := make([]models.ScoredKeyword, len(suggestions))
	failures := make([]*KeywordError, len(suggestions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentAnalyses)
	for i, keyword := range suggestions {
		g.Go(func() error {
			sk, err := s.analyze(gctx, keyword)
			if err != nil {
				var ke *KeywordError
				if !errors.As(err, &ke) {
					ke = &KeywordError{Keyword: keyword, Err: err}
				}
				failures[i] = ke
				return nil
			}
			results[i] = sk
			return nil
		})
	}
	g.Wait()

	scored := make([]models.ScoredKeyword, 0, len(suggestions))
	var errs []*KeywordError
	for i := range suggestions {
		if failures[i] != nil {
			errs = append(errs, failures[i])
			continue
		}
		scored = append(scored, results[i])
	}

	if len(scored) == 0 && len(errs) > 0 {
		return nil, errs, errs[0]
	}
	return scored, errs, nil
}

func (s *Service) suggestions(ctx context.Context, seed string) ([]string, error) {
	if strings.TrimSpace(seed) == "" {
		return nil, ErrEmptySeed
	}
	suggestions, err := s.source.Suggest(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("fetch suggestions: %w", err)
	}
	return suggestions, nil
}

// analyze fetches the top results for one keyword and scores them.
func (s *Service) analyze(ctx context.Context, keyword string) (models.ScoredKeyword, error) {
	stats, err := s.source.Search(ctx, keyword, s.maxResults)
	if err != nil {
		return models.ScoredKeyword{}, &KeywordError{Keyword: keyword, Err: err}
	}
	return models.ScoredKeyword{
		Keyword:     keyword,
		Competition: scoring.CompetitionScore(stats.TotalResults, stats.Items),
		Demand:      scoring.DemandScore(stats.Items, s.now(), s.benchmarks),
	}, nil
}
