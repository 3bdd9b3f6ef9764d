package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

// testClient wires a Client to a stub API server.
func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{
		APIKey:     "test-key",
		Region:     "US",
		APIBase:    srv.URL,
		SuggestURL: srv.URL + "/complete/search",
	})
}

func TestSuggest(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "gaming" {
			t.Errorf("suggest query = %q, want %q", got, "gaming")
		}
		fmt.Fprint(w, `["gaming",["gaming","gaming pc","gaming chair"]]`)
	}))

	got, err := c.Suggest(context.Background(), "gaming")
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	want := []string{"gaming", "gaming pc", "gaming chair"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest() = %v, want %v", got, want)
	}
}

func TestSuggestEmptyPayload(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `["obscureseed",[]]`)
	}))

	got, err := c.Suggest(context.Background(), "obscureseed")
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Suggest() = %v, want empty", got)
	}
}

func TestSuggestUpstreamError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))

	if _, err := c.Suggest(context.Background(), "gaming"); err == nil {
		t.Fatal("Suggest() error = nil, want error on 503")
	}
}

func TestSearchJoinsStatisticsByID(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			fmt.Fprint(w, `{
				"pageInfo": {"totalResults": 123456},
				"items": [
					{"id": {"videoId": "vid00000001"}, "snippet": {"title": "First", "channelTitle": "Chan A", "publishedAt": "2024-01-02T15:04:05Z"}},
					{"id": {"videoId": "vid00000002"}, "snippet": {"title": "Second", "channelTitle": "Chan B", "publishedAt": "2024-02-02T15:04:05Z"}}
				]
			}`)
		case "/videos":
			// Statistics deliberately out of search order; the join is by ID.
			fmt.Fprint(w, `{
				"items": [
					{"id": "vid00000002", "statistics": {"viewCount": "200", "likeCount": "20", "commentCount": "2"}},
					{"id": "vid00000001", "statistics": {"viewCount": "100", "commentCount": "1"}}
				]
			}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))

	got, err := c.Search(context.Background(), "gaming", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if got.TotalResults != 123456 {
		t.Errorf("TotalResults = %d, want 123456", got.TotalResults)
	}
	if len(got.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(got.Items))
	}
	// Search ranking order is preserved.
	if got.Items[0].VideoID != "vid00000001" || got.Items[1].VideoID != "vid00000002" {
		t.Errorf("item order = [%s, %s], want search order", got.Items[0].VideoID, got.Items[1].VideoID)
	}
	if got.Items[0].ViewCount != 100 {
		t.Errorf("Items[0].ViewCount = %d, want 100", got.Items[0].ViewCount)
	}
	// Missing like count (hidden likes) is normalized to 0.
	if got.Items[0].LikeCount != 0 {
		t.Errorf("Items[0].LikeCount = %d, want 0", got.Items[0].LikeCount)
	}
	if got.Items[1].ViewCount != 200 || got.Items[1].LikeCount != 20 {
		t.Errorf("Items[1] counts = (%d, %d), want (200, 20)", got.Items[1].ViewCount, got.Items[1].LikeCount)
	}
}

func TestGetVideoDetailsNotFound(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items": []}`)
	}))

	if _, err := c.GetVideoDetails(context.Background(), "missing0000"); !errors.Is(err, ErrVideoNotFound) {
		t.Errorf("GetVideoDetails() error = %v, want ErrVideoNotFound", err)
	}
}

func TestGetChannelDetailsNotFound(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items": []}`)
	}))

	if _, err := c.GetChannelDetails(context.Background(), "nobody"); !errors.Is(err, ErrChannelNotFound) {
		t.Errorf("GetChannelDetails() error = %v, want ErrChannelNotFound", err)
	}
}

func TestParseKeywordString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"plain words", "gaming rig setup", []string{"gaming", "rig", "setup"}},
		{"quoted phrase", `gaming "gaming setup" rig`, []string{"gaming", "gaming setup", "rig"}},
		{"duplicates dropped", "go go gadget", []string{"go", "gadget"}},
		{"extra spaces", "  a   b ", []string{"a", "b"}},
		{"only quotes", `""`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseKeywordString(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseKeywordString(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"12345", 12345},
		{"0", 0},
		{"", 0},
		{"-3", 0},
		{"garbage", 0},
	}
	for _, tt := range tests {
		if got := parseCount(tt.in); got != tt.want {
			t.Errorf("parseCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
