// Package rank implements rank lookup and the recurring rank-tracking
// runner for tracked videos.
package rank

import (
	"context"
	"fmt"

	"tuberank/internal/models"
)

// maxSnapshotCompetitors caps how many top results are recorded in each
// history snapshot.
const maxSnapshotCompetitors = 5

// Searcher is the read-only search capability the lookup needs.
// *youtube.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, keyword string, maxResults int) (*models.SearchStats, error)
}

// Lookup determines a video's position within the top-N search results
// for a keyword. It never mutates persisted state.
type Lookup struct {
	source Searcher
	window int
}

// NewLookup creates a lookup scanning the top window results.
func NewLookup(source Searcher, window int) *Lookup {
	if window <= 0 {
		window = 50
	}
	return &Lookup{source: source, window: window}
}

// FindRank returns the 1-based position of videoID in the keyword's
// results, with models.PositionNotFound when the video is outside the
// observed window. The observation carries the total result count and the
// current top competitors.
func (l *Lookup) FindRank(ctx context.Context, videoID, keyword string) (*models.RankObservation, error) {
	stats, err := l.source.Search(ctx, keyword, l.window)
	if err != nil {
		return nil, fmt.Errorf("rank lookup %s/%q: %w", videoID, keyword, err)
	}

	obs := &models.RankObservation{
		Position:     models.PositionNotFound,
		TotalResults: stats.TotalResults,
	}

	for i, item := range stats.Items {
		if item.VideoID == videoID {
			obs.Position = i + 1
		}
		if i < maxSnapshotCompetitors {
			obs.TopCompetitors = append(obs.TopCompetitors, models.Competitor{
				VideoID:      item.VideoID,
				VideoTitle:   item.Title,
				ChannelTitle: item.ChannelTitle,
				Position:     i + 1,
			})
		}
	}

	return obs, nil
}
