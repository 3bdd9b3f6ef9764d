package validation

import "testing"

func TestParseVideoID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"standard watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch URL without www", "https://youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch URL with extra params", "https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short URL", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"embed URL", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"legacy v URL", "https://youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"mobile URL", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"surrounding whitespace", "  https://youtu.be/dQw4w9WgXcQ  ", "dQw4w9WgXcQ"},
		{"channel URL is not a video", "https://www.youtube.com/@SomeChannel", ""},
		{"garbage", "not a url", ""},
		{"empty", "", ""},
		{"too-short id", "https://youtu.be/short", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseVideoID(tt.url); got != tt.want {
				t.Errorf("ParseVideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestIsValidVideoID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"dQw4w9WgXcQ", true},
		{"abc12345678", true},
		{"a_b-c456789", true},
		{"tooshort", false},
		{"waytoolongvideoid", false},
		{"bad!chars<>", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidVideoID(tt.id); got != tt.want {
			t.Errorf("IsValidVideoID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestParseChannelHandle(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"channel id URL", "https://www.youtube.com/channel/UCabc123", "UCabc123"},
		{"custom URL", "https://youtube.com/c/SomeCreator", "SomeCreator"},
		{"user URL", "https://www.youtube.com/user/olduser", "olduser"},
		{"handle URL", "https://www.youtube.com/@handle.name", "handle.name"},
		{"video URL is not a channel", "https://youtu.be/dQw4w9WgXcQ", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseChannelHandle(tt.url); got != tt.want {
				t.Errorf("ParseChannelHandle(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestSplitKeywords(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"gaming, gaming pc, gaming chair", 3},
		{"solo", 1},
		{"  spaced  ,  , ", 1},
		{"", 0},
		{",,,", 0},
	}

	for _, tt := range tests {
		got := SplitKeywords(tt.in)
		if len(got) != tt.want {
			t.Errorf("SplitKeywords(%q) = %v (len %d), want len %d", tt.in, got, len(got), tt.want)
		}
		for _, k := range got {
			if k == "" {
				t.Errorf("SplitKeywords(%q) produced empty keyword", tt.in)
			}
		}
	}
}
