package extraction

import (
	"regexp"
	"strings"
)

// OrganizerExtractor looks for lines introduced by an organizer keyword
// ("hosted by", "presented by", "organized by").
type OrganizerExtractor struct{}

var organizerKeywordRe = regexp.MustCompile(`(?i)\b(?:hosted by|presented by|organized by|organised by|brought to you by)\b[:\s]*`)

func (OrganizerExtractor) Field() string { return FieldOrganizer }

func (OrganizerExtractor) Extract(nt NormalizedText) FieldResult {
	for i, line := range nt.Lines {
		loc := organizerKeywordRe.FindStringIndex(line)
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
	return notFound()
}
