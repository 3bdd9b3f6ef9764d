package audit

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"tuberank/internal/models"
	"tuberank/internal/validation"
	"tuberank/internal/youtube"
)

// ErrInvalidURL is returned when a URL yields neither a video ID nor a
// channel handle.
var ErrInvalidURL = errors.New("invalid YouTube URL: could not extract video or channel ID")

// Provider is the YouTube detail lookup the auditor depends on.
type Provider interface {
	GetVideoDetails(ctx context.Context, videoID string) (*youtube.VideoDetails, error)
	GetChannelDetails(ctx context.Context, handle string) (*youtube.ChannelDetails, error)
}

// Service audits videos and channels against a best-practice rubric.
type Service struct {
	provider Provider
	now      func() time.Time
}

// New creates an audit service backed by the given provider.
func New(provider Provider) *Service {
	return &Service{provider: provider, now: time.Now}
}

// Audit inspects the URL, fetches the target's details and scores it.
// Video URLs are tried first, then channel URLs.
func (s *Service) Audit(ctx context.Context, url string) (*models.AuditReport, error) {
	if videoID := validation.ParseVideoID(url); videoID != "" {
		details, err := s.provider.GetVideoDetails(ctx, videoID)
		if err != nil {
			return nil, fmt.Errorf("fetching video %s: %w", videoID, err)
		}
		report := auditVideo(details)
		report.URL = url
		report.GeneratedAt = s.now()
		return report, nil
	}

	if handle := validation.ParseChannelHandle(url); handle != "" {
		details, err := s.provider.GetChannelDetails(ctx, handle)
		if err != nil {
			return nil, fmt.Errorf("fetching channel %s: %w", handle, err)
		}
		report := auditChannel(details)
		report.URL = url
		report.GeneratedAt = s.now()
		return report, nil
	}

	return nil, ErrInvalidURL
}

// check records one rubric outcome, awarding points on pass and a
// recommendation on failure.
func check(report *models.AuditReport, name string, passed bool, points int, recommendation string) {
	c := models.AuditCheck{Name: name, Passed: passed}
	if passed {
		c.Points = points
		report.Score += points
	} else {
		report.Recommendations = append(report.Recommendations, recommendation)
	}
	report.Checks = append(report.Checks, c)
}

func auditVideo(v *youtube.VideoDetails) *models.AuditReport {
	report := &models.AuditReport{
		Type:     models.AuditTypeVideo,
		MaxScore: 100,
	}

	titleLen := len(v.Title)
	check(report, "Title Length", titleLen >= 60 && titleLen <= 70, 15,
		"Optimize title length to 60-70 characters for better visibility")

	check(report, "Description Length", len(v.Description) >= 250, 15,
		"Add a detailed description (250+ characters) to improve SEO")

	tagCount := len(v.Tags)
	check(report, "Tags Count", tagCount >= 5 && tagCount <= 15, 10,
		"Use 5-15 relevant tags to help with discoverability")

	check(report, "High Quality Thumbnail", v.HasHDThumbnail, 10,
		"Upload a custom high-resolution thumbnail")

	var engagementRate float64
	if v.ViewCount > 0 {
		engagementRate = float64(v.LikeCount+v.CommentCount) / float64(v.ViewCount) * 100
	}
	check(report, "Engagement Rate", engagementRate >= 2, 20,
		"Encourage viewers to like and comment to improve engagement")

	seconds := parseISODuration(v.Duration)
	check(report, "Video Duration", seconds >= 300 && seconds <= 1200, 15,
		"Optimize video length to 5-20 minutes for better retention")

	check(report, "Public Visibility", v.PrivacyStatus == "public", 15,
		"Make video public for maximum reach")

	return report
}

func auditChannel(ch *youtube.ChannelDetails) *models.AuditReport {
	report := &models.AuditReport{
		Type:     models.AuditTypeChannel,
		MaxScore: 100,
	}

	check(report, "Channel Description", len(ch.Description) >= 200, 20,
		"Add a detailed channel description (200+ characters)")

	check(report, "Channel Art", ch.HasBannerImage, 15,
		"Add channel art/banner to improve branding")

	check(report, "Subscriber Milestone", ch.SubscriberCount >= 1000, 25,
		"Focus on reaching 1,000 subscribers for monetization eligibility")

	check(report, "Content Volume", ch.VideoCount >= 20, 20,
		"Publish more content (aim for 20+ videos) to build authority")

	check(report, "Channel Keywords", len(ch.Keywords) > 0, 20,
		"Add channel keywords in settings to improve discoverability")

	return report
}

var isoDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// parseISODuration converts an ISO 8601 duration like "PT12M34S" to
// seconds. Malformed input parses to 0.
func parseISODuration(d string) int {
	m := isoDurationRe.FindStringSubmatch(d)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	return hours*3600 + minutes*60 + seconds
}
