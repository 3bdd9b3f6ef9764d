package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// VideoDetails is the full per-video payload needed by audits.
type VideoDetails struct {
	ID             string
	Title          string
	ChannelID      string
	ChannelTitle   string
	Description    string
	Tags           []string
	HasHDThumbnail bool
	ViewCount      int64
	LikeCount      int64
	CommentCount   int64
	Duration       string // ISO 8601, e.g. "PT12M34S"
	PrivacyStatus  string
}

type videosResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string   `json:"title"`
			ChannelID    string   `json:"channelId"`
			ChannelTitle string   `json:"channelTitle"`
			Description  string   `json:"description"`
			Tags         []string `json:"tags"`
			Thumbnails   map[string]struct {
				URL string `json:"url"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		Statistics     statistics `json:"statistics"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Status struct {
			PrivacyStatus string `json:"privacyStatus"`
		} `json:"status"`
	} `json:"items"`
}

// GetVideoDetails fetches snippet, statistics, duration and privacy status
// for one video. Returns ErrVideoNotFound for unknown or private IDs.
func (c *Client) GetVideoDetails(ctx context.Context, videoID string) (*VideoDetails, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails,status")
	params.Set("id", videoID)
	params.Set("key", c.apiKey)

	resp, err := c.get(ctx, c.apiBase+"/videos?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("video details %s: %w", videoID, err)
	}
	defer resp.Body.Close()

	var vr videosResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("decode video details %s: %w", videoID, err)
	}
	if len(vr.Items) == 0 {
		return nil, ErrVideoNotFound
	}

	item := vr.Items[0]
	_, hasMaxres := item.Snippet.Thumbnails["maxres"]
	_, hasHigh := item.Snippet.Thumbnails["high"]

	return &VideoDetails{
		ID:             item.ID,
		Title:          item.Snippet.Title,
		ChannelID:      item.Snippet.ChannelID,
		ChannelTitle:   item.Snippet.ChannelTitle,
		Description:    item.Snippet.Description,
		Tags:           item.Snippet.Tags,
		HasHDThumbnail: hasMaxres || hasHigh,
		ViewCount:      parseCount(item.Statistics.ViewCount),
		LikeCount:      parseCount(item.Statistics.LikeCount),
		CommentCount:   parseCount(item.Statistics.CommentCount),
		Duration:       item.ContentDetails.Duration,
		PrivacyStatus:  item.Status.PrivacyStatus,
	}, nil
}

// VideoTags returns the tag list of a video. A video without tags yields
// an empty slice, not an error.
func (c *Client) VideoTags(ctx context.Context, videoID string) ([]string, error) {
	details, err := c.GetVideoDetails(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if details.Tags == nil {
		return []string{}, nil
	}
	return details.Tags, nil
}
