package extraction

import "math"

// ScoringWeights assigns each field's importance weight for the confidence
// score. Weights should sum to 100; a found field contributes its weight
// scaled by the extractor's quality hint, a missing field contributes zero.
// The score is therefore monotone: finding another field, or the same field
// at higher quality, never lowers it.
type ScoringWeights map[string]float64

// DefaultScoringWeights returns the calibrated weight table. Title and date
// carry the most weight; organizer, contact, and website the least.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		FieldTitle:     25,
		FieldDate:      20,
		FieldTime:      15,
		FieldVenue:     15,
		FieldCategory:  8,
		FieldOrganizer: 6,
		FieldContact:   6,
		FieldWebsite:   5,
	}
}

// Score aggregates per-field extraction outcomes into one 0-100 integer.
// Deterministic: no randomness, no clock, no dependence on extractor order.
func Score(results map[string]FieldResult, weights ScoringWeights) int {
	var total float64
	for field, weight := range weights {
		result, ok := results[field]
		if !ok || !result.Found {
			continue
		}

		quality := result.Quality
		if quality < 0 {
			quality = 0
		}
		if quality > 1 {
			quality = 1
		}
		total += weight * quality
	}

	score := int(math.Round(total))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
