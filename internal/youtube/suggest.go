package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
)

// Suggest fetches autocomplete keyword suggestions for a seed term.
// The endpoint answers with a positional JSON array: index 0 is the query
// echoed back, index 1 the list of suggestions. An empty list is a valid
// answer for obscure seeds.
func (c *Client) Suggest(ctx context.Context, seed string) ([]string, error) {
	params := url.Values{}
	params.Set("client", "firefox")
	params.Set("ds", "yt")
	params.Set("q", seed)

	resp, err := c.get(ctx, c.suggestURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetch suggestions for %q: %w", seed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read suggestions for %q: %w", seed, err)
	}

	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode suggestions for %q: %w", seed, err)
	}
	if len(payload) < 2 {
		return nil, nil
	}

	var suggestions []string
	if err := json.Unmarshal(payload[1], &suggestions); err != nil {
		return nil, fmt.Errorf("decode suggestion list for %q: %w", seed, err)
	}
	return suggestions, nil
}
