package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// ChannelDetails is the per-channel payload needed by audits and
// competitor keyword extraction.
type ChannelDetails struct {
	ID              string
	Title           string
	Description     string
	Keywords        []string
	HasBannerImage  bool
	SubscriberCount int64
	VideoCount      int64
}

type channelsResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"snippet"`
		Statistics       statistics `json:"statistics"`
		BrandingSettings struct {
			Channel struct {
				Keywords string `json:"keywords"`
			} `json:"channel"`
			Image struct {
				BannerExternalURL string `json:"bannerExternalUrl"`
			} `json:"image"`
		} `json:"brandingSettings"`
	} `json:"items"`
}

// GetChannelDetails fetches a channel by handle. Returns
// ErrChannelNotFound for unknown handles.
func (c *Client) GetChannelDetails(ctx context.Context, handle string) (*ChannelDetails, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics,brandingSettings")
	params.Set("forHandle", handle)
	params.Set("key", c.apiKey)

	resp, err := c.get(ctx, c.apiBase+"/channels?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("channel details %s: %w", handle, err)
	}
	defer resp.Body.Close()

	var cr channelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("decode channel details %s: %w", handle, err)
	}
	if len(cr.Items) == 0 {
		return nil, ErrChannelNotFound
	}

	item := cr.Items[0]
	return &ChannelDetails{
		ID:              item.ID,
		Title:           item.Snippet.Title,
		Description:     item.Snippet.Description,
		Keywords:        parseKeywordString(item.BrandingSettings.Channel.Keywords),
		HasBannerImage:  item.BrandingSettings.Image.BannerExternalURL != "",
		SubscriberCount: parseCount(item.Statistics.SubscriberCount),
		VideoCount:      parseCount(item.Statistics.VideoCount),
	}, nil
}

// ChannelKeywords returns the deduplicated keyword list from a channel's
// branding settings. Channels without keywords yield an empty slice.
func (c *Client) ChannelKeywords(ctx context.Context, handle string) ([]string, error) {
	details, err := c.GetChannelDetails(ctx, handle)
	if err != nil {
		return nil, err
	}
	return details.Keywords, nil
}

// parseKeywordString splits the branding-settings keyword string, which is
// space-separated with double quotes around multi-word phrases, e.g.
// `gaming "gaming setup" rig`. Duplicates are dropped, order preserved.
func parseKeywordString(s string) []string {
	keywords := []string{}
	seen := map[string]bool{}

	var current strings.Builder
	insideQuotes := false

	flush := func() {
		k := strings.TrimSpace(current.String())
		current.Reset()
		if k == "" || seen[k] {
			return
		}
		seen[k] = true
		keywords = append(keywords, k)
	}

	for _, r := range s {
		switch {
		case r == '"':
			insideQuotes = !insideQuotes
		case r == ' ' && !insideQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return keywords
}
