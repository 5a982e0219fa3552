package extraction

import (
	"regexp"
	"strings"
)

// ContactExtractor matches phone numbers (digit runs bounded to plausible
// phone lengths) and email addresses. When both appear on the same line the
// email wins, since it is the higher-signal form.
type ContactExtractor struct{}

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`[+(]?\d[\d\s().-]{7,}\d`)
)

func (ContactExtractor) Field() string { return FieldContact }

func (ContactExtractor) Extract(nt NormalizedText) FieldResult {
	for _, line := range nt.Lines {
		if email := emailRe.FindString(line); email != "" {
			return found(email, 1.0)
		}
		if phone := findPhone(line); phone != "" {
			return found(phone, 0.8)
		}
	}
	return notFound()
}

// findPhone returns the first digit run on the line whose digit count fits a
// real phone number (10-15 digits, allowing a country code). Shorter runs
// are prices, years, or partial numbers, not reachable contacts.
func findPhone(line string) string {
	for _, run := range phoneRe.FindAllString(line, -1) {
		n := countDigits(run)
		if n >= 10 && n <= 15 {
			return strings.Trim(run, " .-")
		}
	}
	return ""
}
