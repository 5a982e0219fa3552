package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"vision2schedule-backend/internal/models"
)

// OpenAIClient re-extracts event fields from raw flyer text with an LLM.
// It is an optional assist for scans where the deterministic pipeline came
// back with a low confidence score; the pipeline itself never depends on it.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// OpenAIAssistResponse carries the LLM's field suggestions plus usage data.
type OpenAIAssistResponse struct {
	Record       models.EventRecord `json:"record"`
	TokensUsed   int                `json:"tokens_used"`
	ProcessingMS int64              `json:"processing_ms"`
}

// NewOpenAIClient creates an OpenAI client for extraction assistance.
func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		client:      openai.NewClient(apiKey),
		model:       "gpt-4o-mini",
		temperature: 0.1,
		maxTokens:   1000,
	}
}

// NewOpenAIClientWithConfig creates a client with custom model settings.
func NewOpenAIClientWithConfig(apiKey, model string, temperature float32, maxTokens int) *OpenAIClient {
	return &OpenAIClient{
		client:      openai.NewClient(apiKey),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// SuggestEventFields asks the model to read raw flyer text and return event
// fields as strict JSON. Fields the model cannot find come back empty and
// stay absent in the suggestion.
func (o *OpenAIClient) SuggestEventFields(ctx context.Context, rawText string) (*OpenAIAssistResponse, error) {
	startTime := time.Now()

	if strings.TrimSpace(rawText) == "" {
		return nil, fmt.Errorf("raw text cannot be empty")
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: o.temperature,
		MaxTokens:   o.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: assistSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: "Flyer text:\n" + rawText,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response choices from openai")
	}

	cleaned := cleanJSONResponse(resp.Choices[0].Message.Content)

	var suggestion struct {
		Title     string `json:"title"`
		Date      string `json:"date"`
		Time      string `json:"time"`
		Venue     string `json:"venue"`
		Organizer string `json:"organizer"`
		Contact   string `json:"contact"`
		Website   string `json:"website"`
		Category  string `json:"category"`
	}
	if err := json.Unmarshal([]byte(cleaned), &suggestion); err != nil {
		return nil, fmt.Errorf("failed to parse openai response JSON: %w\nResponse: %s", err, cleaned)
	}

	record := models.EventRecord{
		Title:     strings.TrimSpace(suggestion.Title),
		Venue:     strings.TrimSpace(suggestion.Venue),
		Organizer: strings.TrimSpace(suggestion.Organizer),
		Contact:   strings.TrimSpace(suggestion.Contact),
		Website:   strings.TrimSpace(suggestion.Website),
	}

	// Suggested values pass the same validity bars as the deterministic
	// extractors; a plausible-looking but invalid value is dropped.
	if models.IsValidISODate(suggestion.Date) {
		record.Date = suggestion.Date
	}
	if models.IsValid24HourTime(suggestion.Time) {
		record.Time = suggestion.Time
	}
	if models.ValidateCategory(suggestion.Category) {
		record.Category = strings.ToLower(strings.TrimSpace(suggestion.Category))
	}

	return &OpenAIAssistResponse{
		Record:       record,
		TokensUsed:   resp.Usage.TotalTokens,
		ProcessingMS: time.Since(startTime).Milliseconds(),
	}, nil
}

const assistSystemPrompt = `You extract structured event data from OCR text of event flyers.

Return a JSON object with exactly these keys, using "" for anything not present in the text:
{
  "title": "",
  "date": "YYYY-MM-DD",
  "time": "HH:MM (24-hour)",
  "venue": "",
  "organizer": "",
  "contact": "phone or email",
  "website": "",
  "category": "one of: music, workshop, conference, sale, festival, sports, theater, community"
}

Rules:
- Never invent details that are not in the text.
- Dates must be real calendar dates; otherwise leave "".
- Output only the JSON object, no markdown.`

// cleanJSONResponse strips markdown code fences the model sometimes wraps
// around its JSON output.
func cleanJSONResponse(response string) string {
	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
