package extraction

import (
	"regexp"
	"strings"
)

// WebsiteExtractor matches URL-like tokens (optional scheme, domain with a
// recognized top-level-domain suffix, optional path) and prefixes a scheme
// when absent. Tokens with a malformed host are rejected.
type WebsiteExtractor struct{}

var websiteRe = regexp.MustCompile(`(?i)\b(?:https?://)?(?:[a-z0-9-]+\.)+(?:com|org|net|edu|gov|io|co|us|uk|ca|info|events|live|site)\b(?:/[^\s]*)?`)

func (WebsiteExtractor) Field() string { return FieldWebsite }

func (WebsiteExtractor) Extract(nt NormalizedText) FieldResult {
	for _, line := range nt.Lines {
		raw, ok := matchWebsite(line)
		if !ok {
			continue
		}

		quality := 0.8
		if strings.HasPrefix(strings.ToLower(raw), "http://") ||
			strings.HasPrefix(strings.ToLower(raw), "https://") {
			quality = 1.0
		} else {
			raw = "http://" + raw
		}
		return found(raw, quality)
	}
	return notFound()
}

// matchWebsite finds the first URL-like token on the line that is not the
// domain part of an email address and has a well-formed host.
func matchWebsite(line string) (string, bool) {
	for _, loc := range websiteRe.FindAllStringIndex(line, -1) {
		// Skip the host portion of an email address.
		if loc[0] > 0 && line[loc[0]-1] == '@' {
			continue
		}

		raw := strings.TrimRight(line[loc[0]:loc[1]], ".,;:")
		if validHost(raw) {
			return raw, true
		}
	}
	return "", false
}

// validHost rejects hosts with empty or hyphen-edged labels, which pass the
// token pattern but are not resolvable names.
func validHost(raw string) bool {
	host := strings.ToLower(raw)
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	if idx := strings.Index(host, "/"); idx >= 0 {
		host = host[:idx]
	}

	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if label == "" || strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
	}
	return true
}
