package extraction

import "strings"

// NormalizedText is the cleaned, line-segmented form of recognized flyer
// text. Line order is preserved because position carries signal: titles are
// disproportionately likely on the first non-empty line.
type NormalizedText struct {
	Lines []string
	Flat  string
}

// Empty reports whether normalization produced no usable text.
func (nt NormalizedText) Empty() bool {
	return len(nt.Lines) == 0
}

// Normalize cleans raw OCR text: collapses runs of whitespace within each
// line, strips leading/trailing whitespace, and drops empty lines. It is
// idempotent: Normalize(nt.Flat) reproduces nt.
func Normalize(raw string) NormalizedText {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		cleaned := strings.Join(strings.Fields(line), " ")
		if cleaned == "" {
			continue
		}
		lines = append(lines, cleaned)
	}

	return NormalizedText{
		Lines: lines,
		Flat:  strings.Join(lines, "\n"),
	}
}
