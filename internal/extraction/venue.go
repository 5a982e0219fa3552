package extraction

import (
	"regexp"
	"strings"
)

// VenueExtractor looks for lines introduced by a location keyword ("at",
// "venue", "location"), then for address-shaped lines, and finally falls
// back to the longest line no other pattern claimed.
type VenueExtractor struct{}

var (
	venueKeywordRe = regexp.MustCompile(`(?i)^(?:at|venue|location|where)\b[:\s]*`)
	streetSuffixRe = regexp.MustCompile(`(?i)\b(?:st|street|ave|avenue|rd|road|blvd|boulevard|dr|drive|ln|lane|way|hall|center|centre|park|plaza|room|theatre|theater|arena|stadium)\b`)
	cityStateRe    = regexp.MustCompile(`\b[A-Z][a-z]+,\s*[A-Z]{2}\b`)
)

func (VenueExtractor) Field() string { return FieldVenue }

func (VenueExtractor) Extract(nt NormalizedText) FieldResult {
	// Keyword-introduced lines first; the venue is the remainder of the
	// line, or the following line when the keyword stands alone.
	for i, line := range nt.Lines {
		loc := venueKeywordRe.FindStringIndex(line)
		if loc == nil {
			continue
		}
		remainder := strings.TrimSpace(line[loc[1]:])
		if remainder != "" {
			return found(remainder, 0.9)
		}
		if i+1 < len(nt.Lines) {
			return found(nt.Lines[i+1], 0.85)
		}
	}

	for _, line := range nt.Lines {
		if streetSuffixRe.MatchString(line) || cityStateRe.MatchString(line) {
			return found(line, 0.75)
		}
	}

	// Fallback: the longest line that no other extractor pattern claims.
	best := ""
	for i, line := range nt.Lines {
		if i == 0 {
			continue // first line is the title's territory
		}
		if looksLikeDateLine(line) || looksLikeTimeLine(line) ||
			looksLikeContactLine(line) || looksLikeWebsiteLine(line) {
			continue
		}
		if len(line) > len(best) {
			best = line
		}
	}
	if best != "" {
		return found(best, 0.5)
	}

	return notFound()
}
