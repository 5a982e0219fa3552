package extraction

import (
	"strings"
	"unicode"
)

// TitleExtractor picks the first non-empty line that does not read as a
// date, time, contact, or website and exceeds a minimum length. Earlier
// lines and title-case/uppercase styling raise the quality hint.
type TitleExtractor struct{}

const minTitleLength = 4

func (TitleExtractor) Field() string { return FieldTitle }

func (TitleExtractor) Extract(nt NormalizedText) FieldResult {
	for i, line := range nt.Lines {
		if len(line) < minTitleLength {
			continue
		}
		if looksLikeDateLine(line) || looksLikeTimeLine(line) ||
			looksLikeContactLine(line) || looksLikeWebsiteLine(line) {
			continue
		}

		return found(line, titleQuality(i, line))
	}
	return notFound()
}

func titleQuality(lineIndex int, line string) float64 {
	var quality float64
	switch lineIndex {
	case 0:
		quality = 1.0
	case 1:
		quality = 0.85
	case 2:
		quality = 0.7
	default:
		quality = 0.6
	}

	if !isProminentStyled(line) {
		quality -= 0.2
	}
	if quality < 0.3 {
		quality = 0.3
	}
	return quality
}

// isProminentStyled reports whether the line is fully uppercase or title
// cased, both common stylings for flyer headlines.
func isProminentStyled(line string) bool {
	hasLetter := false
	allUpper := true
	for _, r := range line {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				allUpper = false
			}
		}
	}
	if hasLetter && allUpper {
		return true
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		r := []rune(w)[0]
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
