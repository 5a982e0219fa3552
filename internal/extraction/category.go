package extraction

import (
	"strings"
	"unicode"

	"vision2schedule-backend/internal/models"
)

// CategoryExtractor matches the flyer text against the fixed category
// vocabulary in models. Matching is case-insensitive on whole words; the
// first vocabulary term appearing in the text wins.
type CategoryExtractor struct{}

func (CategoryExtractor) Field() string { return FieldCategory }

func (CategoryExtractor) Extract(nt NormalizedText) FieldResult {
	vocab := make(map[string]string, len(models.CategoryVocabulary()))
	for _, term := range models.CategoryVocabulary() {
		vocab[term] = term
	}

	words := strings.FieldsFunc(strings.ToLower(nt.Flat), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	for _, word := range words {
		if term, ok := vocab[word]; ok {
			return found(term, 0.8)
		}
		// Plural keyword, e.g. "workshops".
		if term, ok := vocab[strings.TrimSuffix(word, "s")]; ok {
			return found(term, 0.8)
		}
	}
	return notFound()
}
