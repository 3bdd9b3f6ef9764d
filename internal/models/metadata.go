package models

// VideoMetadata is AI-generated upload metadata for a video topic.
type VideoMetadata struct {
	Titles      []string `json:"titles"`
	Description string   `json:"description"`
	Hashtags    []string `json:"hashtags"`
}
