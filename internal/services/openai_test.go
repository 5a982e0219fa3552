package services

import (
	"context"
	"testing"
)

func TestSuggestEventFieldsRejectsEmptyText(t *testing.T) {
	client := NewOpenAIClient("test-key")

	for _, rawText := range []string{"", "   ", "\n\t"} {
		if _, err := client.SuggestEventFields(context.Background(), rawText); err == nil {
			t.Errorf("Expected error for raw text %q", rawText)
		}
	}
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "PlainJSON",
			input:    `{"title": "Jazz Night"}`,
			expected: `{"title": "Jazz Night"}`,
		},
		{
			name:     "JSONCodeFence",
			input:    "```json\n{\"title\": \"Jazz Night\"}\n```",
			expected: `{"title": "Jazz Night"}`,
		},
		{
			name:     "BareCodeFence",
			input:    "```\n{\"title\": \"Jazz Night\"}\n```",
			expected: `{"title": "Jazz Night"}`,
		},
		{
			name:     "SurroundingWhitespace",
			input:    "  \n{\"title\": \"Jazz Night\"}\n  ",
			expected: `{"title": "Jazz Night"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSONResponse(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
