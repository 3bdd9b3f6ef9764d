// Package scoring turns raw search-result statistics into bounded
// competition and demand scores. All functions are pure and total:
// malformed numeric input is clamped, never rejected.
package scoring

import (
	"math"
	"time"

	"tuberank/internal/models"
)

// logScaleMax approximates log10 of a saturating result count (~10,000,000).
// Result counts and view counts span many orders of magnitude; dividing
// their log by this constant compresses them into a comparable range.
const logScaleMax = 7

// Benchmarks are the calibration constants for the demand score: the
// engagement levels that would map to a score of 100.
type Benchmarks struct {
	DailyViews float64
	Likes      float64
	Comments   float64
}

// DefaultBenchmarks are the reference calibration values.
var DefaultBenchmarks = Benchmarks{
	DailyViews: 50000,
	Likes:      10000,
	Comments:   500,
}

// CompetitionScore estimates how saturated a keyword is, on a 0-100 scale.
// The primary factor is the total number of competing videos; the secondary
// factor is the average view count of the current top results.
func CompetitionScore(totalResults int64, top []models.VideoStats) int {
	searchVolume := (log10Floor(float64(totalResults)) / logScaleMax) * 60

	var meanViews float64
	if len(top) > 0 {
		var sum float64
		for _, v := range top {
			sum += nonNegative(float64(v.ViewCount))
		}
		meanViews = sum / float64(len(top))
	}
	topPlayerStrength := (log10Floor(meanViews) / logScaleMax) * 40

	return clampScore(searchVolume + topPlayerStrength)
}

// DemandScore estimates audience interest for a keyword, on a 0-100 scale,
// from the view velocity and engagement of the current top results.
// An empty result list scores 0.
func DemandScore(top []models.VideoStats, now time.Time, b Benchmarks) int {
	if len(top) == 0 {
		return 0
	}

	var totalDailyViews, totalLikes, totalComments float64
	for _, v := range top {
		ageDays := math.Floor(now.Sub(v.PublishedAt).Hours() / 24)
		if ageDays < 1 {
			ageDays = 1
		}
		totalDailyViews += nonNegative(float64(v.ViewCount)) / ageDays
		totalLikes += nonNegative(float64(v.LikeCount))
		totalComments += nonNegative(float64(v.CommentCount))
	}

	n := float64(len(top))
	avgDailyViews := totalDailyViews / n
	avgLikes := totalLikes / n
	avgComments := totalComments / n

	viewScore := (math.Log10(avgDailyViews+1) / math.Log10(b.DailyViews+1)) * 70
	likeScore := (math.Log10(avgLikes+1) / math.Log10(b.Likes+1)) * 20
	commentScore := (math.Log10(avgComments+1) / math.Log10(b.Comments+1)) * 10

	return clampScore(viewScore + likeScore + commentScore)
}

// log10Floor is log10 with inputs below 1 treated as 1, so the
// contribution bottoms out at 0 instead of going negative or infinite.
func log10Floor(v float64) float64 {
	if v < 1 || math.IsNaN(v) {
		return 0
	}
	return math.Log10(v)
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

// clampScore rounds and bounds a raw score into [0, 100].
func clampScore(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}
