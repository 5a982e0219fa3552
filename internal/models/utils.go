package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// GenerateEventID creates a stable ID for an event from its core attributes.
func GenerateEventID(title, date, venue string) string {
	normalizedTitle := strings.ToLower(strings.TrimSpace(title))
	normalizedDate := strings.ToLower(strings.TrimSpace(date))
	normalizedVenue := strings.ToLower(strings.TrimSpace(venue))

	input := fmt.Sprintf("%s|%s|%s", normalizedTitle, normalizedDate, normalizedVenue)
	hash := sha256.Sum256([]byte(input))

	return "evt_" + hex.EncodeToString(hash[:])[:8]
}

// GenerateScanID creates a unique ID for a scan.
func GenerateScanID(fileName string, timestamp time.Time) string {
	input := fmt.Sprintf("%s|%d", fileName, timestamp.UnixNano())
	hash := sha256.Sum256([]byte(input))
	return "scan_" + hex.EncodeToString(hash[:])[:8]
}

// CandidateIdentity returns the stable dedup identity for a candidate event:
// the feed-provided ID when present, otherwise a normalized title+venue
// composite.
func CandidateIdentity(c CandidateEvent) string {
	if c.FeedID != "" {
		return c.FeedID
	}
	return normalizeIdentityPart(c.Title) + "|" + normalizeIdentityPart(c.Venue)
}

func normalizeIdentityPart(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// ValidateCategory checks if the category is part of the known vocabulary.
func ValidateCategory(category string) bool {
	lowered := strings.ToLower(strings.TrimSpace(category))
	for _, valid := range CategoryVocabulary() {
		if lowered == valid {
			return true
		}
	}
	return false
}

// ValidateSearchMode checks if the search mode is valid.
func ValidateSearchMode(mode SearchMode) bool {
	return mode == SearchModeSameCategory || mode == SearchModeAllNearby
}

// IsValidEmail performs basic email validation.
func IsValidEmail(email string) bool {
	if email == "" {
		return false
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}

	if len(parts[0]) == 0 || len(parts[1]) == 0 {
		return false
	}

	if !strings.Contains(parts[1], ".") {
		return false
	}

	return true
}

// IsValidURL performs basic URL validation.
func IsValidURL(url string) bool {
	if url == "" {
		return false
	}

	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

// IsValidPhoneNumber performs basic phone number validation.
func IsValidPhoneNumber(phone string) bool {
	if phone == "" {
		return false
	}

	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, "+", "")

	if len(cleaned) < 7 || len(cleaned) > 15 {
		return false
	}

	for _, char := range cleaned {
		if char < '0' || char > '9' {
			return false
		}
	}

	return true
}

// IsValidISODate checks YYYY-MM-DD format and calendar validity.
// time.Parse accepts unpadded components, so the length check keeps the
// format canonical.
func IsValidISODate(date string) bool {
	if len(date) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// IsValid24HourTime checks HH:MM format with in-range hour and minute.
func IsValid24HourTime(t string) bool {
	if len(t) != 5 {
		return false
	}
	_, err := time.Parse("15:04", t)
	return err == nil
}
