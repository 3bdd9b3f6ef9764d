package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tuberank/internal/models"
)

type searchResponse struct {
	PageInfo struct {
		TotalResults int64 `json:"totalResults"`
	} `json:"pageInfo"`
	Items []searchItem `json:"items"`
}

type searchItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet snippet `json:"snippet"`
}

type snippet struct {
	Title        string    `json:"title"`
	ChannelID    string    `json:"channelId"`
	ChannelTitle string    `json:"channelTitle"`
	Description  string    `json:"description"`
	PublishedAt  time.Time `json:"publishedAt"`
}

type statisticsResponse struct {
	Items []struct {
		ID         string     `json:"id"`
		Statistics statistics `json:"statistics"`
	} `json:"items"`
}

// statistics carries the count fields the Data API serializes as strings.
type statistics struct {
	ViewCount       string `json:"viewCount"`
	LikeCount       string `json:"likeCount"`
	CommentCount    string `json:"commentCount"`
	SubscriberCount string `json:"subscriberCount"`
	VideoCount      string `json:"videoCount"`
}

// Search returns the top maxResults videos for a keyword together with the
// estimated total result count and per-video engagement statistics.
// Statistics are fetched in one batched videos.list call and joined by ID;
// results keep the search ranking order.
func (c *Client) Search(ctx context.Context, keyword string, maxResults int) (*models.SearchStats, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", keyword)
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("key", c.apiKey)
	if c.region != "" {
		params.Set("regionCode", c.region)
	}

	resp, err := c.get(ctx, c.apiBase+"/search?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", keyword, err)
	}
	defer resp.Body.Close()

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode search %q: %w", keyword, err)
	}

	ids := make([]string, 0, len(sr.Items))
	for _, item := range sr.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}

	stats, err := c.videoStatistics(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("statistics for %q: %w", keyword, err)
	}

	items := make([]models.VideoStats, 0, len(ids))
	for _, item := range sr.Items {
		id := item.ID.VideoID
		if id == "" {
			continue
		}
		s := stats[id]
		items = append(items, models.VideoStats{
			VideoID:      id,
			Title:        item.Snippet.Title,
			ChannelTitle: item.Snippet.ChannelTitle,
			Description:  item.Snippet.Description,
			PublishedAt:  item.Snippet.PublishedAt,
			ViewCount:    parseCount(s.ViewCount),
			LikeCount:    parseCount(s.LikeCount),
			CommentCount: parseCount(s.CommentCount),
		})
	}

	return &models.SearchStats{
		TotalResults: sr.PageInfo.TotalResults,
		Items:        items,
	}, nil
}

// videoStatistics fetches statistics for up to 50 video IDs in one call.
func (c *Client) videoStatistics(ctx context.Context, ids []string) (map[string]statistics, error) {
	if len(ids) == 0 {
		return map[string]statistics{}, nil
	}

	params := url.Values{}
	params.Set("part", "statistics")
	params.Set("id", strings.Join(ids, ","))
	params.Set("key", c.apiKey)

	resp, err := c.get(ctx, c.apiBase+"/videos?"+params.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var stats statisticsResponse
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("decode statistics: %w", err)
	}

	byID := make(map[string]statistics, len(stats.Items))
	for _, item := range stats.Items {
		byID[item.ID] = item.Statistics
	}
	return byID, nil
}

// parseCount normalizes a string count to a non-negative integer.
// Missing or malformed counts (hidden likes, disabled comments) become 0.
func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
