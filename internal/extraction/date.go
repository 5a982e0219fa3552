package extraction

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateExtractor matches calendar dates in numeric and month-name forms and
// normalizes them to YYYY-MM-DD. Tokens that look like a date but fail
// calendar validity (day 32, month 13) are rejected.
type DateExtractor struct{}

var (
	monthNames = map[string]int{
		"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
		"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
	}

	monthAlternation = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`

	numericDateRe = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)
	monthDayRe    = regexp.MustCompile(`(?i)\b(` + monthAlternation + `)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s*(\d{4}))?\b`)
	dayMonthRe    = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(` + monthAlternation + `)\.?(?:,?\s*(\d{4}))?\b`)
	bareYearRe    = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

func (DateExtractor) Field() string { return FieldDate }

// Extract prefers the match nearest the top of the text. Month-name forms
// with an explicit 4-digit year score highest; a yearless month-name form is
// accepted only when a standalone 4-digit year appears elsewhere in the
// text, at reduced quality.
func (DateExtractor) Extract(nt NormalizedText) FieldResult {
	fallbackYear := findFallbackYear(nt.Flat)

	for _, line := range nt.Lines {
		if ok, iso, quality := matchDateWithFallback(line, fallbackYear); ok {
			return found(iso, quality)
		}
	}
	return notFound()
}

// matchDate reports whether the line contains a self-contained valid date
// (one that does not need a borrowed year).
func matchDate(line string) (bool, string, float64) {
	return matchDateWithFallback(line, 0)
}

func matchDateWithFallback(line string, fallbackYear int) (bool, string, float64) {
	if m := monthDayRe.FindStringSubmatch(line); m != nil {
		month := monthNames[strings.ToLower(m[1])[:3]]
		day, _ := strconv.Atoi(m[2])
		if iso, quality, ok := resolveMonthNameDate(month, day, m[3], fallbackYear); ok {
			return true, iso, quality
		}
	}

	if m := dayMonthRe.FindStringSubmatch(line); m != nil {
		day, _ := strconv.Atoi(m[1])
		month := monthNames[strings.ToLower(m[2])[:3]]
		if iso, quality, ok := resolveMonthNameDate(month, day, m[3], fallbackYear); ok {
			return true, iso, quality
		}
	}

	if m := numericDateRe.FindStringSubmatch(line); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		year, fourDigit := expandYear(m[3])

		// M/D/Y first, then D/M/Y when the first reading is not a valid
		// calendar date.
		iso, ok := isoDate(year, a, b)
		if !ok {
			iso, ok = isoDate(year, b, a)
		}
		if ok {
			quality := 0.6
			if fourDigit {
				quality = 0.9
			}
			return true, iso, quality
		}
	}

	return false, "", 0
}

func resolveMonthNameDate(month, day int, yearGroup string, fallbackYear int) (string, float64, bool) {
	if yearGroup != "" {
		year, _ := strconv.Atoi(yearGroup)
		iso, ok := isoDate(year, month, day)
		return iso, 1.0, ok
	}
	if fallbackYear != 0 {
		iso, ok := isoDate(fallbackYear, month, day)
		return iso, 0.75, ok
	}
	return "", 0, false
}

// findFallbackYear returns a standalone 4-digit year from the text, if any.
// Flyers often print the year once, away from the day and month.
func findFallbackYear(flat string) int {
	m := bareYearRe.FindString(flat)
	if m == "" {
		return 0
	}
	year, _ := strconv.Atoi(m)
	return year
}

func expandYear(raw string) (year int, fourDigit bool) {
	year, _ = strconv.Atoi(raw)
	if len(raw) == 4 {
		return year, true
	}
	return 2000 + year, false
}

// isoDate validates a calendar date and formats it as YYYY-MM-DD. time.Date
// normalizes out-of-range components, so a round-trip mismatch means the
// input was not a real date.
func isoDate(year, month, day int) (string, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}
