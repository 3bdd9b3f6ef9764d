package audit

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tuberank/internal/models"
	"tuberank/internal/youtube"
)

type stubProvider struct {
	video      *youtube.VideoDetails
	channel    *youtube.ChannelDetails
	videoErr   error
	channelErr error
}

func (s *stubProvider) GetVideoDetails(ctx context.Context, videoID string) (*youtube.VideoDetails, error) {
	if s.videoErr != nil {
		return nil, s.videoErr
	}
	return s.video, nil
}

func (s *stubProvider) GetChannelDetails(ctx context.Context, handle string) (*youtube.ChannelDetails, error) {
	if s.channelErr != nil {
		return nil, s.channelErr
	}
	return s.channel, nil
}

func perfectVideo() *youtube.VideoDetails {
	return &youtube.VideoDetails{
		ID:             "abc12345678",
		Title:          strings.Repeat("t", 65),
		Description:    strings.Repeat("d", 300),
		Tags:           []string{"one", "two", "three", "four", "five"},
		HasHDThumbnail: true,
		ViewCount:      1000,
		LikeCount:      15,
		CommentCount:   10,
		Duration:       "PT10M30S",
		PrivacyStatus:  "public",
	}
}

func TestAuditVideoPerfectScore(t *testing.T) {
	provider := &stubProvider{video: perfectVideo()}
	svc := New(provider)

	report, err := svc.Audit(context.Background(), "https://www.youtube.com/watch?v=abc12345678")
	if err != nil {
		t.Fatalf("Audit() error = %v", err)
	}
	if report.Type != models.AuditTypeVideo {
		t.Errorf("report type = %q, want video", report.Type)
	}
	if report.Score != 100 {
		t.Errorf("score = %d, want 100", report.Score)
	}
	if len(report.Checks) != 7 {
		t.Errorf("checks = %d, want 7", len(report.Checks))
	}
	if len(report.Recommendations) != 0 {
		t.Errorf("recommendations = %v, want none", report.Recommendations)
	}
	if report.GeneratedAt.IsZero() {
		t.Error("GeneratedAt is zero")
	}
}

func TestAuditVideoFailedChecks(t *testing.T) {
	video := perfectVideo()
	video.Title = "short title"
	video.PrivacyStatus = "unlisted"
	provider := &stubProvider{video: video}
	svc := New(provider)

	report, err := svc.Audit(context.Background(), "https://youtu.be/abc12345678")
	if err != nil {
		t.Fatalf("Audit() error = %v", err)
	}
	if report.Score != 70 {
		t.Errorf("score = %d, want 70", report.Score)
	}
	if len(report.Recommendations) != 2 {
		t.Errorf("recommendations = %d, want 2", len(report.Recommendations))
	}

	var titleCheck, privacyCheck *models.AuditCheck
	for i := range report.Checks {
		switch report.Checks[i].Name {
		case "Title Length":
			titleCheck = &report.Checks[i]
		case "Public Visibility":
			privacyCheck = &report.Checks[i]
		}
	}
	if titleCheck == nil || titleCheck.Passed || titleCheck.Points != 0 {
		t.Errorf("title check = %+v, want failed with 0 points", titleCheck)
	}
	if privacyCheck == nil || privacyCheck.Passed {
		t.Errorf("privacy check = %+v, want failed", privacyCheck)
	}
}

func TestAuditVideoZeroViews(t *testing.T) {
	video := perfectVideo()
	video.ViewCount = 0
	video.LikeCount = 0
	video.CommentCount = 0
	provider := &stubProvider{video: video}
	svc := New(provider)

	report, err := svc.Audit(context.Background(), "https://www.youtube.com/watch?v=abc12345678")
	if err != nil {
		t.Fatalf("Audit() error = %v", err)
	}
	// Zero views must not divide by zero; engagement simply fails.
	if report.Score != 80 {
		t.Errorf("score = %d, want 80", report.Score)
	}
}

func TestAuditChannel(t *testing.T) {
	provider := &stubProvider{channel: &youtube.ChannelDetails{
		ID:              "UCabc",
		Title:           "Test Channel",
		Description:     strings.Repeat("d", 250),
		Keywords:        []string{"gaming", "reviews"},
		HasBannerImage:  true,
		SubscriberCount: 5000,
		VideoCount:      42,
	}}
	svc := New(provider)

	report, err := svc.Audit(context.Background(), "https://www.youtube.com/@testchannel")
	if err != nil {
		t.Fatalf("Audit() error = %v", err)
	}
	if report.Type != models.AuditTypeChannel {
		t.Errorf("report type = %q, want channel", report.Type)
	}
	if report.Score != 100 {
		t.Errorf("score = %d, want 100", report.Score)
	}
	if len(report.Checks) != 5 {
		t.Errorf("checks = %d, want 5", len(report.Checks))
	}
}

func TestAuditChannelBelowMilestones(t *testing.T) {
	provider := &stubProvider{channel: &youtube.ChannelDetails{
		Description:     "short",
		SubscriberCount: 500,
		VideoCount:      3,
	}}
	svc := New(provider)

	report, err := svc.Audit(context.Background(), "https://www.youtube.com/@tiny")
	if err != nil {
		t.Fatalf("Audit() error = %v", err)
	}
	if report.Score != 0 {
		t.Errorf("score = %d, want 0", report.Score)
	}
	if len(report.Recommendations) != 5 {
		t.Errorf("recommendations = %d, want 5", len(report.Recommendations))
	}
}

func TestAuditInvalidURL(t *testing.T) {
	svc := New(&stubProvider{})

	if _, err := svc.Audit(context.Background(), "https://example.com/not-youtube"); !errors.Is(err, ErrInvalidURL) {
		t.Errorf("Audit() error = %v, want ErrInvalidURL", err)
	}
}

func TestAuditProviderError(t *testing.T) {
	provider := &stubProvider{videoErr: youtube.ErrVideoNotFound}
	svc := New(provider)

	if _, err := svc.Audit(context.Background(), "https://www.youtube.com/watch?v=abc12345678"); !errors.Is(err, youtube.ErrVideoNotFound) {
		t.Errorf("Audit() error = %v, want wrapped ErrVideoNotFound", err)
	}
}

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"PT10M30S", 630},
		{"PT1H2M3S", 3723},
		{"PT45S", 45},
		{"PT20M", 1200},
		{"PT1H", 3600},
		{"", 0},
		{"garbage", 0},
	}
	for _, tt := range tests {
		if got := parseISODuration(tt.in); got != tt.want {
			t.Errorf("parseISODuration(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
