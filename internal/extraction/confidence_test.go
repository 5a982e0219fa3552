package extraction

import "testing"

func TestScore(t *testing.T) {
	weights := DefaultScoringWeights()

	t.Run("NoFieldsIsZero", func(t *testing.T) {
		if got := Score(map[string]FieldResult{}, weights); got != 0 {
			t.Errorf("Expected score 0 for empty results, got %d", got)
		}
	})

	t.Run("AllFieldsAtFullQualityIsHundred", func(t *testing.T) {
		results := make(map[string]FieldResult)
		for field := range weights {
			results[field] = FieldResult{Found: true, Value: "x", Quality: 1.0}
		}
		if got := Score(results, weights); got != 100 {
			t.Errorf("Expected score 100, got %d", got)
		}
	})

	t.Run("SingleFieldContributesItsWeight", func(t *testing.T) {
		results := map[string]FieldResult{
			FieldTitle: {Found: true, Value: "x", Quality: 1.0},
		}
		if got := Score(results, weights); got != 25 {
			t.Errorf("Expected score 25 for title alone, got %d", got)
		}
	})

	t.Run("QualityScalesContribution", func(t *testing.T) {
		results := map[string]FieldResult{
			FieldDate: {Found: true, Value: "x", Quality: 0.5},
		}
		if got := Score(results, weights); got != 10 {
			t.Errorf("Expected score 10 for half-quality date, got %d", got)
		}
	})

	t.Run("MonotoneOnNewField", func(t *testing.T) {
		base := map[string]FieldResult{
			FieldTitle: {Found: true, Value: "x", Quality: 0.7},
		}
		before := Score(base, weights)

		base[FieldVenue] = FieldResult{Found: true, Value: "y", Quality: 0.5}
		after := Score(base, weights)

		if after <= before {
			t.Errorf("Expected score to increase when a field is found: %d -> %d", before, after)
		}
	})

	t.Run("MonotoneOnQualityImprovement", func(t *testing.T) {
		low := map[string]FieldResult{
			FieldTitle: {Found: true, Value: "x", Quality: 0.3},
			FieldDate:  {Found: true, Value: "y", Quality: 0.6},
		}
		high := map[string]FieldResult{
			FieldTitle: {Found: true, Value: "x", Quality: 0.3},
			FieldDate:  {Found: true, Value: "y", Quality: 1.0},
		}
		if Score(high, weights) < Score(low, weights) {
			t.Error("Expected score to be non-decreasing when a field's quality improves")
		}
	})

	t.Run("QualityClampedToUnitRange", func(t *testing.T) {
		results := map[string]FieldResult{
			FieldTitle: {Found: true, Value: "x", Quality: 5.0},
		}
		if got := Score(results, weights); got != 25 {
			t.Errorf("Expected out-of-range quality clamped to weight, got %d", got)
		}
	})
}
