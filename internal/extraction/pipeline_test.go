package extraction

import (
	"reflect"
	"testing"
)

const jazzFlyerText = "Spring Jazz Night\nMarch 14, 2025\n7:00 PM\nAt The Blue Room\nHosted by City Arts\nContact: 555-123-4567\nwww.cityarts.org"

func TestPipelineExtractJazzFlyer(t *testing.T) {
	record := NewPipeline().Extract(jazzFlyerText)

	if record.Title != "Spring Jazz Night" {
		t.Errorf("Expected title Spring Jazz Night, got %q", record.Title)
	}
	if record.Date != "2025-03-14" {
		t.Errorf("Expected date 2025-03-14, got %q", record.Date)
	}
	if record.Time != "19:00" {
		t.Errorf("Expected time 19:00, got %q", record.Time)
	}
	if record.Venue != "The Blue Room" {
		t.Errorf("Expected venue The Blue Room, got %q", record.Venue)
	}
	if record.Organizer != "City Arts" {
		t.Errorf("Expected organizer City Arts, got %q", record.Organizer)
	}
	if record.Contact != "555-123-4567" {
		t.Errorf("Expected contact 555-123-4567, got %q", record.Contact)
	}
	if record.Website != "http://www.cityarts.org" {
		t.Errorf("Expected website http://www.cityarts.org, got %q", record.Website)
	}
	if record.ConfidenceScore < 85 {
		t.Errorf("Expected confidence >= 85 for a complete flyer, got %d", record.ConfidenceScore)
	}
	if record.ConfidenceScore > 100 {
		t.Errorf("Confidence out of range: %d", record.ConfidenceScore)
	}
}

func TestPipelineExtractDegenerateInput(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "ContactFragmentOnly", text: "call 555-9999 sometime"},
		{name: "Empty", text: ""},
		{name: "WhitespaceOnly", text: "   \n\t\n  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := NewPipeline().Extract(tt.text)

			if record.Title != "" || record.Date != "" || record.Time != "" ||
				record.Venue != "" || record.Organizer != "" || record.Contact != "" ||
				record.Website != "" || record.Category != "" {
				t.Errorf("Expected all fields absent, got %+v", record)
			}
			if record.ConfidenceScore != 0 {
				t.Errorf("Expected confidence 0, got %d", record.ConfidenceScore)
			}
		})
	}
}

func TestPipelineExtractDeterministic(t *testing.T) {
	pipeline := NewPipeline()
	first := pipeline.Extract(jazzFlyerText)

	// Extractors run concurrently; repeated runs must land identically.
	for i := 0; i < 50; i++ {
		if got := pipeline.Extract(jazzFlyerText); !reflect.DeepEqual(first, got) {
			t.Fatalf("Run %d differed: %+v vs %+v", i, first, got)
		}
	}
}

func TestPipelineScoreAlwaysInRange(t *testing.T) {
	inputs := []string{
		jazzFlyerText,
		"call 555-9999 sometime",
		"WORKSHOP",
		"3/14/2025\n7 pm\nnoon midnight",
		"a\nb\nc\nd",
	}

	pipeline := NewPipeline()
	for _, input := range inputs {
		record := pipeline.Extract(input)
		if record.ConfidenceScore < 0 || record.ConfidenceScore > 100 {
			t.Errorf("Score out of range for %q: %d", input, record.ConfidenceScore)
		}
	}
}

func TestPipelineCustomWeights(t *testing.T) {
	weights := ScoringWeights{FieldTitle: 100}
	record := NewPipelineWithWeights(weights).Extract("Spring Gala")

	if record.ConfidenceScore != 100 {
		t.Errorf("Expected title-only weighting to give 100, got %d", record.ConfidenceScore)
	}
}
