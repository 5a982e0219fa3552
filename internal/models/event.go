package models

import "time"

// EventRecord is the structured result of extracting one scanned flyer.
// Every extraction field is optional: a scan is valid even if only a subset
// of fields could be parsed. ConfidenceScore reflects extraction completeness.
type EventRecord struct {
	ID     string `json:"id"`
	UserID string `json:"user_id,omitempty"`
	ScanID string `json:"scan_id,omitempty"`

	Title     string `json:"title,omitempty"`
	Date      string `json:"date,omitempty"` // ISO date (YYYY-MM-DD)
	Time      string `json:"time,omitempty"` // HH:MM, 24-hour
	Venue     string `json:"venue,omitempty"`
	Organizer string `json:"organizer,omitempty"`
	Contact   string `json:"contact,omitempty"` // phone or email
	Website   string `json:"website,omitempty"`
	Category  string `json:"category,omitempty"`

	ConfidenceScore int `json:"confidence_score"` // 0-100

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Scan stores the raw OCR result for one uploaded flyer image.
type Scan struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FileName  string    `json:"file_name"`
	RawText   string    `json:"raw_text"`
	WordCount int       `json:"word_count"`
	ImageKey  string    `json:"image_key,omitempty"` // S3 object key of the archived flyer
	EventID   string    `json:"event_id,omitempty"`  // extracted event, if one was produced
	CreatedAt time.Time `json:"created_at"`
}

// User represents a registered account. PasswordHash is bcrypt; the raw
// password is never stored.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinate is within Earth ranges.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// CandidateEvent is an external feed's view of an event. Either Coordinate
// or Venue must be usable; candidates with neither are dropped during
// nearby matching.
type CandidateEvent struct {
	FeedID     string      `json:"feed_id,omitempty"`
	Title      string      `json:"title"`
	Venue      string      `json:"venue"`
	Coordinate *Coordinate `json:"coordinate,omitempty"`
	Category   string      `json:"category,omitempty"`
	Date       string      `json:"date,omitempty"`
	URL        string      `json:"url,omitempty"`
	Source     string      `json:"source,omitempty"` // which feed produced it
}

// RankedNearbyEvent is a CandidateEvent with its computed distance from the
// search origin. Every element of a result set satisfies DistanceKm <= the
// active search radius.
type RankedNearbyEvent struct {
	CandidateEvent
	DistanceKm float64 `json:"distance_km"`
}

// SearchMode selects how the nearby matcher filters candidates.
type SearchMode string

const (
	// SearchModeSameCategory keeps only candidates whose category matches
	// the input category exactly (case-insensitive).
	SearchModeSameCategory SearchMode = "same-category"
	// SearchModeAllNearby applies no category filter.
	SearchModeAllNearby SearchMode = "all-nearby"
)

// Category vocabulary for flyer classification. First vocabulary term found
// in the text wins; extend by appending here and nowhere else.
const (
	CategoryMusic      = "music"
	CategoryWorkshop   = "workshop"
	CategoryConference = "conference"
	CategorySale       = "sale"
	CategoryFestival   = "festival"
	CategorySports     = "sports"
	CategoryTheater    = "theater"
	CategoryCommunity  = "community"
)

// CategoryVocabulary lists every known category keyword, in match-priority
// order. Matching is case-insensitive on the flattened flyer text.
func CategoryVocabulary() []string {
	return []string{
		CategoryMusic,
		CategoryWorkshop,
		CategoryConference,
		CategorySale,
		CategoryFestival,
		CategorySports,
		CategoryTheater,
		CategoryCommunity,
	}
}
