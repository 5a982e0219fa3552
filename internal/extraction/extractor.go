package extraction

import "regexp"

// Field names for the eight extraction targets.
const (
	FieldTitle     = "title"
	FieldDate      = "date"
	FieldTime      = "time"
	FieldVenue     = "venue"
	FieldOrganizer = "organizer"
	FieldContact   = "contact"
	FieldWebsite   = "website"
	FieldCategory  = "category"
)

// FieldResult is the outcome of one extractor run: either a found value with
// a local quality hint in [0,1], or not found. A pattern match that is
// structurally well-formed but semantically invalid (day 32, hour 25,
// malformed host) yields not-found rather than a plausible-but-wrong value.
type FieldResult struct {
	Found   bool
	Value   string
	Quality float64
}

func found(value string, quality float64) FieldResult {
	return FieldResult{Found: true, Value: value, Quality: quality}
}

func notFound() FieldResult {
	return FieldResult{}
}

// Extractor maps normalized flyer text to an optional value for one event
// attribute. Extractors are pure and independent: running them in any order
// or concurrently yields identical results.
type Extractor interface {
	Field() string
	Extract(nt NormalizedText) FieldResult
}

// Extractors returns the fixed set of field extractors, one per target
// field, invoked by explicit enumeration.
func Extractors() []Extractor {
	return []Extractor{
		TitleExtractor{},
		DateExtractor{},
		TimeExtractor{},
		VenueExtractor{},
		OrganizerExtractor{},
		ContactExtractor{},
		WebsiteExtractor{},
		CategoryExtractor{},
	}
}

// Shared line-classification helpers. The title extractor skips lines that
// already read as another field, and the venue fallback only considers lines
// no other pattern claimed.

var (
	digitRunRe = regexp.MustCompile(`\+?\d[\d\s().-]{5,}\d`)
)

func looksLikeDateLine(line string) bool {
	if m, _, _ := matchDate(line); m {
		return true
	}
	return false
}

func looksLikeTimeLine(line string) bool {
	if m, _, _ := matchTime(line); m {
		return true
	}
	return false
}

// looksLikeContactLine reports whether the line carries an email address or
// a phone-length digit run. Digit runs shorter than a phone number (prices,
// ages) do not count.
func looksLikeContactLine(line string) bool {
	if emailRe.FindString(line) != "" {
		return true
	}
	for _, run := range digitRunRe.FindAllString(line, -1) {
		if n := countDigits(run); n >= 7 && n <= 15 {
			return true
		}
	}
	return false
}

func looksLikeWebsiteLine(line string) bool {
	_, ok := matchWebsite(line)
	return ok
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
