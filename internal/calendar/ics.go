// Package calendar turns extracted event records into downloadable .ics
// files.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"vision2schedule-backend/internal/models"
)

// ErrDateRequired is returned when an event has no date to schedule.
var ErrDateRequired = errors.New("event date is required for calendar scheduling")

// defaultEventDuration is used when a flyer gives a start time but no end.
const defaultEventDuration = 2 * time.Hour

// CombineDateTime merges an event's ISO date and optional 24-hour time into
// one timestamp. A missing time resolves to midnight.
func CombineDateTime(eventDate, eventTime string) (time.Time, error) {
	if eventDate == "" {
		return time.Time{}, ErrDateRequired
	}

	day, err := time.Parse("2006-01-02", eventDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid event date %q: %w", eventDate, err)
	}

	if eventTime == "" {
		return day, nil
	}

	clock, err := time.Parse("15:04", eventTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid event time %q: %w", eventTime, err)
	}

	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC), nil
}

// BuildICS renders a single-event iCalendar document. Events without a time
// become all-day entries.
func BuildICS(event *models.EventRecord) (string, error) {
	start, err := CombineDateTime(event.Date, event.Time)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//vision2schedule//backend//EN")

	vevent := cal.AddEvent(event.ID)
	vevent.SetDtStampTime(time.Now().UTC())
	vevent.SetSummary(summaryFor(event))

	if event.Time == "" {
		vevent.SetAllDayStartAt(start)
		vevent.SetAllDayEndAt(start.AddDate(0, 0, 1))
	} else {
		vevent.SetStartAt(start)
		vevent.SetEndAt(start.Add(defaultEventDuration))
	}

	if event.Venue != "" {
		vevent.SetLocation(event.Venue)
	}
	if event.Website != "" {
		vevent.SetURL(event.Website)
	}
	if description := descriptionFor(event); description != "" {
		vevent.SetDescription(description)
	}

	return cal.Serialize(), nil
}

func summaryFor(event *models.EventRecord) string {
	if event.Title != "" {
		return event.Title
	}
	return "Untitled event"
}

func descriptionFor(event *models.EventRecord) string {
	var parts []string
	if event.Organizer != "" {
		parts = append(parts, "Organizer: "+event.Organizer)
	}
	if event.Contact != "" {
		parts = append(parts, "Contact: "+event.Contact)
	}
	if event.Category != "" {
		parts = append(parts, "Category: "+event.Category)
	}
	return strings.Join(parts, "\n")
}
