package extraction

import (
	"sync"

	"vision2schedule-backend/internal/models"
)

// Pipeline runs the full extraction sequence: normalize the raw OCR text,
// run every field extractor against the same normalized text, assemble the
// event record, and score it.
type Pipeline struct {
	extractors []Extractor
	weights    ScoringWeights
}

// NewPipeline creates a pipeline with the default extractor set and weights.
func NewPipeline() *Pipeline {
	return NewPipelineWithWeights(DefaultScoringWeights())
}

// NewPipelineWithWeights creates a pipeline with custom scoring weights.
func NewPipelineWithWeights(weights ScoringWeights) *Pipeline {
	return &Pipeline{
		extractors: Extractors(),
		weights:    weights,
	}
}

// Extract parses raw OCR text into a structured event record. A field that
// cannot be extracted is simply absent; empty or whitespace-only input
// yields an all-absent record with score 0. Extract never fails.
func (p *Pipeline) Extract(rawText string) models.EventRecord {
	nt := Normalize(rawText)
	if nt.Empty() {
		return models.EventRecord{ConfidenceScore: 0}
	}

	results := p.runExtractors(nt)

	record := models.EventRecord{
		ConfidenceScore: Score(results, p.weights),
	}
	assign := func(field string, dst *string) {
		if r, ok := results[field]; ok && r.Found {
			*dst = r.Value
		}
	}
	assign(FieldTitle, &record.Title)
	assign(FieldDate, &record.Date)
	assign(FieldTime, &record.Time)
	assign(FieldVenue, &record.Venue)
	assign(FieldOrganizer, &record.Organizer)
	assign(FieldContact, &record.Contact)
	assign(FieldWebsite, &record.Website)
	assign(FieldCategory, &record.Category)

	return record
}

// runExtractors executes every extractor concurrently. Extractors are pure
// and share no state, so each result lands in its own slot and the outcome
// is identical to a sequential run.
func (p *Pipeline) runExtractors(nt NormalizedText) map[string]FieldResult {
	slots := make([]FieldResult, len(p.extractors))

	var wg sync.WaitGroup
	for i, ex := range p.extractors {
		wg.Add(1)
		go func(i int, ex Extractor) {
			defer wg.Done()
			slots[i] = ex.Extract(nt)
		}(i, ex)
	}
	wg.Wait()

	results := make(map[string]FieldResult, len(p.extractors))
	for i, ex := range p.extractors {
		results[ex.Field()] = slots[i]
	}
	return results
}
