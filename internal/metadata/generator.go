package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/sashabaranov/go-openai"

	"tuberank/internal/models"
)

// ErrEmptyDescription is returned when neither the model response nor
// the fallback parser produced a usable description.
var ErrEmptyDescription = errors.New("generated metadata has no description")

const promptTemplate = `You are a professional YouTube SEO expert and content strategist.

TASK:
For a video about the topic '%s', generate the following in STRICT JSON only:

{
  "titles": ["title1", "title2", "title3", "title4", "title5"],
  "description": "200-250 words, strong hook at start, keywords included, ends with CTA",
  "hashtags": ["#hashtag1", "#hashtag2", "#hashtag3", "#hashtag4", "#hashtag5", "#hashtag6", "#hashtag7", "#hashtag8", "#hashtag9", "#hashtag10"]
}

RULES:
- Titles: 5 viral, SEO-optimized, <60 chars, engaging.
- Description: natural language, keyword-rich, ends with CTA.
- Hashtags: 10 trending, searchable on YouTube.
- ONLY return valid JSON. Do not include extra text.`

// completer is the slice of the OpenAI client the generator uses.
type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Generator produces upload metadata for a video topic via a chat model.
type Generator struct {
	client completer
	model  string
}

// New creates a metadata generator using the given API key and model.
func New(apiKey, model string) *Generator {
	return &Generator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Generate asks the model for titles, a description and hashtags for the
// topic. A malformed model response is repaired by the fallback parser;
// an API failure yields static template metadata instead of an error.
func (g *Generator) Generate(ctx context.Context, topic string) (*models.VideoMetadata, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(promptTemplate, topic),
			},
		},
		Temperature: 0.7,
		MaxTokens:   800,
	})
	if err != nil {
		slog.Warn("metadata generation failed, using fallback", "topic", topic, "error", err)
		return fallbackMetadata(topic), nil
	}

	var raw string
	if len(resp.Choices) > 0 {
		raw = resp.Choices[0].Message.Content
	}

	meta := parseResponse(raw, topic)
	return validate(meta, topic)
}

// parseResponse decodes the model output, falling back to pattern
// extraction when the output is not valid JSON.
func parseResponse(raw, topic string) *models.VideoMetadata {
	cleaned := stripFences(raw)

	var meta models.VideoMetadata
	if err := json.Unmarshal([]byte(cleaned), &meta); err == nil {
		return &meta
	}

	slog.Warn("metadata response is not valid JSON, repairing", "topic", topic)
	return repairMetadata(raw)
}

var fenceRe = regexp.MustCompile("```(?:json)?\n?")

// stripFences removes markdown code fences the model sometimes wraps
// JSON in despite instructions.
func stripFences(s string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(s, ""))
}

var (
	quotedRe  = regexp.MustCompile(`"([^"]+)"`)
	hashtagRe = regexp.MustCompile(`#\w+`)
)

// repairMetadata extracts what it can from free-form model output:
// quoted strings become titles, hash-prefixed words become hashtags and
// long sentences become the description.
func repairMetadata(text string) *models.VideoMetadata {
	meta := &models.VideoMetadata{}

	quoted := quotedRe.FindAllStringSubmatch(text, -1)
	if len(quoted) >= 5 {
		for _, m := range quoted[:5] {
			meta.Titles = append(meta.Titles, m[1])
		}
	}

	hashtags := hashtagRe.FindAllString(text, -1)
	if len(hashtags) > 10 {
		hashtags = hashtags[:10]
	}
	meta.Hashtags = hashtags

	var long []string
	for _, s := range regexp.MustCompile(`[.!?]+`).Split(text, -1) {
		if len(strings.TrimSpace(s)) > 50 {
			long = append(long, strings.TrimSpace(s))
		}
		if len(long) == 3 {
			break
		}
	}
	if len(long) > 0 {
		meta.Description = strings.Join(long, ". ") + "."
	}

	return meta
}

var defaultHashtags = []string{"#youtube", "#content", "#viral", "#trending", "#subscribe"}

// validate normalizes the parsed structure: titles are padded to five,
// hashtags are #-prefixed and padded to ten, and an empty description
// is an error.
func validate(meta *models.VideoMetadata, topic string) (*models.VideoMetadata, error) {
	out := &models.VideoMetadata{}

	for _, t := range meta.Titles {
		if t = strings.TrimSpace(t); t != "" {
			out.Titles = append(out.Titles, t)
		}
		if len(out.Titles) == 5 {
			break
		}
	}
	for len(out.Titles) < 5 {
		out.Titles = append(out.Titles, fmt.Sprintf("%s - Video %d", topic, len(out.Titles)+1))
	}

	out.Description = strings.TrimSpace(meta.Description)
	if out.Description == "" {
		return nil, ErrEmptyDescription
	}

	for _, h := range meta.Hashtags {
		if h = strings.TrimSpace(h); h == "" {
			continue
		}
		if !strings.HasPrefix(h, "#") {
			h = "#" + h
		}
		out.Hashtags = append(out.Hashtags, h)
		if len(out.Hashtags) == 10 {
			break
		}
	}
	for len(out.Hashtags) < 10 {
		tag := defaultHashtags[len(out.Hashtags)%len(defaultHashtags)]
		if contains(out.Hashtags, tag) {
			tag = fmt.Sprintf("#tag%d", len(out.Hashtags)+1)
		}
		out.Hashtags = append(out.Hashtags, tag)
	}

	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// fallbackMetadata is the static template served when the API call
// itself fails.
func fallbackMetadata(topic string) *models.VideoMetadata {
	return &models.VideoMetadata{
		Titles: []string{
			fmt.Sprintf("%s - Everything You Need to Know", topic),
			fmt.Sprintf("The Ultimate Guide to %s", topic),
			fmt.Sprintf("%s Explained in Simple Terms", topic),
			fmt.Sprintf("Why %s Matters Right Now", topic),
			fmt.Sprintf("%s - Beginner's Complete Guide", topic),
		},
		Description: fmt.Sprintf("Discover everything you need to know about %s. "+
			"In this comprehensive video, we'll explore the key aspects and provide valuable insights "+
			"that will help you understand this topic better. Whether you're a beginner or looking to "+
			"expand your knowledge, this video has something for everyone. Don't forget to like, "+
			"subscribe, and hit the notification bell for more amazing content!", topic),
		Hashtags: []string{
			"#youtube", "#content", "#education", "#tutorial", "#guide",
			"#tips", "#learn", "#viral", "#trending", "#subscribe",
		},
	}
}
