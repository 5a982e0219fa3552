package extraction

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TimeExtractor matches clock times (HH:MM with optional am/pm, bare "7 pm",
// and the words noon/midnight) and normalizes them to 24-hour HH:MM.
// Out-of-range hours and minutes are rejected.
type TimeExtractor struct{}

var (
	clockRe    = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})(?:\s*([ap])\.?m\.?)?`)
	bareHourRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s*([ap])\.?m\.?\b`)
	noonRe     = regexp.MustCompile(`(?i)\bnoon\b`)
	midnightRe = regexp.MustCompile(`(?i)\bmidnight\b`)
)

func (TimeExtractor) Field() string { return FieldTime }

func (TimeExtractor) Extract(nt NormalizedText) FieldResult {
	for _, line := range nt.Lines {
		if ok, value, quality := matchTime(line); ok {
			return found(value, quality)
		}
	}
	return notFound()
}

func matchTime(line string) (bool, string, float64) {
	if m := clockRe.FindStringSubmatch(line); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		meridiem := strings.ToLower(m[3])

		if value, ok := to24Hour(hour, minute, meridiem); ok {
			quality := 0.9
			if meridiem != "" {
				quality = 1.0
			}
			return true, value, quality
		}
	}

	if m := bareHourRe.FindStringSubmatch(line); m != nil {
		hour, _ := strconv.Atoi(m[1])
		meridiem := strings.ToLower(m[2])

		if value, ok := to24Hour(hour, 0, meridiem); ok {
			return true, value, 0.8
		}
	}

	if noonRe.MatchString(line) {
		return true, "12:00", 0.7
	}
	if midnightRe.MatchString(line) {
		return true, "00:00", 0.7
	}

	return false, "", 0
}

// to24Hour validates hour/minute ranges and applies the am/pm marker.
// With a marker the hour must be 1-12; without one it must already be a
// valid 24-hour value.
func to24Hour(hour, minute int, meridiem string) (string, bool) {
	if minute < 0 || minute > 59 {
		return "", false
	}

	switch meridiem {
	case "a":
		if hour < 1 || hour > 12 {
			return "", false
		}
		hour = hour % 12
	case "p":
		if hour < 1 || hour > 12 {
			return "", false
		}
		hour = hour%12 + 12
	default:
		if hour < 0 || hour > 23 {
			return "", false
		}
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), true
}
