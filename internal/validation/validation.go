package validation

import (
	"regexp"
	"strings"
)

// videoIDPattern matches a bare 11-character YouTube video ID.
var videoIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// videoURLPatterns match the video ID in the supported YouTube URL shapes:
// watch, short, embed, legacy /v/ and mobile URLs.
var videoURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?(?:.*&)?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/v/([a-zA-Z0-9_-]{11})`),
}

// channelURLPatterns match the channel identifier or handle in channel URLs.
var channelURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/channel/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`youtube\.com/c/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`youtube\.com/user/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`youtube\.com/@([a-zA-Z0-9_.-]+)`),
}

// ParseVideoID extracts the 11-character video ID from a YouTube URL.
// Returns an empty string when no supported format matches.
func ParseVideoID(url string) string {
	url = strings.TrimSpace(url)
	for _, p := range videoURLPatterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

// IsValidVideoID reports whether s has the exact shape of a video ID.
func IsValidVideoID(s string) bool {
	return videoIDPattern.MatchString(s)
}

// ParseChannelHandle extracts the channel ID, name or handle from a
// YouTube channel URL. Returns an empty string when nothing matches.
func ParseChannelHandle(url string) string {
	url = strings.TrimSpace(url)
	for _, p := range channelURLPatterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

// SplitKeywords splits a comma-separated keyword string, trimming
// whitespace and dropping empties.
func SplitKeywords(s string) []string {
	var keywords []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

// ValidateSeed checks a research seed keyword: non-empty after trimming
// and within a sane length bound.
func ValidateSeed(seed string) bool {
	seed = strings.TrimSpace(seed)
	return seed != "" && len(seed) <= 200
}

// ValidateTopic checks a metadata-generation topic.
func ValidateTopic(topic string) bool {
	topic = strings.TrimSpace(topic)
	return topic != "" && len(topic) <= 500
}
