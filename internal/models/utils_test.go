package models

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateEventID(t *testing.T) {
	t.Run("StableForSameInputs", func(t *testing.T) {
		a := GenerateEventID("Spring Jazz Night", "2025-03-14", "The Blue Room")
		b := GenerateEventID("  spring jazz night ", "2025-03-14", "the blue room")
		if a != b {
			t.Errorf("Expected normalized inputs to produce the same ID: %s vs %s", a, b)
		}
	})

	t.Run("DifferentEventsDiffer", func(t *testing.T) {
		a := GenerateEventID("Spring Jazz Night", "2025-03-14", "The Blue Room")
		b := GenerateEventID("Spring Jazz Night", "2025-03-15", "The Blue Room")
		if a == b {
			t.Error("Expected different dates to produce different IDs")
		}
	})

	t.Run("Prefixed", func(t *testing.T) {
		id := GenerateEventID("x", "y", "z")
		if !strings.HasPrefix(id, "evt_") {
			t.Errorf("Expected evt_ prefix, got %s", id)
		}
	})
}

func TestGenerateScanID(t *testing.T) {
	now := time.Now()
	a := GenerateScanID("flyer.jpg", now)
	b := GenerateScanID("flyer.jpg", now.Add(time.Nanosecond))
	if a == b {
		t.Error("Expected different timestamps to produce different scan IDs")
	}
	if !strings.HasPrefix(a, "scan_") {
		t.Errorf("Expected scan_ prefix, got %s", a)
	}
}

func TestCandidateIdentity(t *testing.T) {
	t.Run("FeedIDWins", func(t *testing.T) {
		c := CandidateEvent{FeedID: "evt-42", Title: "Anything", Venue: "Anywhere"}
		if got := CandidateIdentity(c); got != "evt-42" {
			t.Errorf("Expected feed ID identity, got %s", got)
		}
	})

	t.Run("TitleVenueFallbackNormalizes", func(t *testing.T) {
		a := CandidateIdentity(CandidateEvent{Title: "Open Mic", Venue: "Corner  Cafe"})
		b := CandidateIdentity(CandidateEvent{Title: "OPEN MIC", Venue: "corner cafe"})
		if a != b {
			t.Errorf("Expected case/space-insensitive identity: %s vs %s", a, b)
		}
	})
}

func TestCoordinateValid(t *testing.T) {
	valid := []Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 90, Lng: 180},
		{Lat: -90, Lng: -180},
		{Lat: 47.6062, Lng: -122.3321},
	}
	for _, c := range valid {
		if !c.Valid() {
			t.Errorf("Expected %+v to be valid", c)
		}
	}

	invalid := []Coordinate{
		{Lat: 91, Lng: 0},
		{Lat: -91, Lng: 0},
		{Lat: 0, Lng: 181},
		{Lat: 0, Lng: -181},
	}
	for _, c := range invalid {
		if c.Valid() {
			t.Errorf("Expected %+v to be invalid", c)
		}
	}
}

func TestValidateCategory(t *testing.T) {
	for _, category := range CategoryVocabulary() {
		if !ValidateCategory(category) {
			t.Errorf("Expected vocabulary term %q to validate", category)
		}
	}
	if !ValidateCategory("  Music ") {
		t.Error("Expected case/space-insensitive category validation")
	}
	if ValidateCategory("juggling") {
		t.Error("Expected unknown category to fail validation")
	}
}

func TestValidateSearchMode(t *testing.T) {
	if !ValidateSearchMode(SearchModeSameCategory) || !ValidateSearchMode(SearchModeAllNearby) {
		t.Error("Expected both defined modes to validate")
	}
	if ValidateSearchMode("everything") {
		t.Error("Expected unknown mode to fail validation")
	}
}

func TestFieldValidators(t *testing.T) {
	t.Run("Email", func(t *testing.T) {
		if !IsValidEmail("info@cityarts.org") {
			t.Error("Expected valid email to pass")
		}
		for _, bad := range []string{"", "no-at-sign", "a@b", "@x.com", "a@"} {
			if IsValidEmail(bad) {
				t.Errorf("Expected %q to fail email validation", bad)
			}
		}
	})

	t.Run("URL", func(t *testing.T) {
		if !IsValidURL("http://cityarts.org") || !IsValidURL("https://cityarts.org") {
			t.Error("Expected schemed URLs to pass")
		}
		if IsValidURL("cityarts.org") || IsValidURL("") {
			t.Error("Expected schemeless URL to fail")
		}
	})

	t.Run("Phone", func(t *testing.T) {
		if !IsValidPhoneNumber("(206) 555-0123") || !IsValidPhoneNumber("+1 206 555 0123") {
			t.Error("Expected real phone numbers to pass")
		}
		if IsValidPhoneNumber("123") || IsValidPhoneNumber("not-a-number") {
			t.Error("Expected junk to fail phone validation")
		}
	})

	t.Run("ISODate", func(t *testing.T) {
		if !IsValidISODate("2025-03-14") {
			t.Error("Expected valid ISO date to pass")
		}
		for _, bad := range []string{"2025-02-30", "14/03/2025", "2025-3-14", ""} {
			if IsValidISODate(bad) {
				t.Errorf("Expected %q to fail date validation", bad)
			}
		}
	})

	t.Run("TwentyFourHourTime", func(t *testing.T) {
		if !IsValid24HourTime("19:00") || !IsValid24HourTime("00:00") {
			t.Error("Expected valid times to pass")
		}
		for _, bad := range []string{"25:00", "19:75", "7 pm", ""} {
			if IsValid24HourTime(bad) {
				t.Errorf("Expected %q to fail time validation", bad)
			}
		}
	})
}
