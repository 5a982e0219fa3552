package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"vision2schedule-backend/internal/models"
)

// EventbriteClient finds candidate events around a coordinate using the
// Eventbrite search API. It implements nearby.EventFeed.
type EventbriteClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

type eventbriteResponse struct {
	Events []struct {
		ID   string `json:"id"`
		Name struct {
			Text string `json:"text"`
		} `json:"name"`
		URL   string `json:"url"`
		Start struct {
			Local string `json:"local"`
		} `json:"start"`
		Venue struct {
			Name      string `json:"name"`
			Latitude  string `json:"latitude"`
			Longitude string `json:"longitude"`
		} `json:"venue"`
		Category struct {
			Name string `json:"name"`
		} `json:"category"`
	} `json:"events"`
}

// NewEventbriteClient creates an Eventbrite search client.
func NewEventbriteClient(token string) *EventbriteClient {
	return &EventbriteClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://www.eventbriteapi.com/v3/events/search/",
		token:      token,
	}
}

// NewEventbriteClientWithBaseURL creates a client pointed at a custom endpoint.
func NewEventbriteClientWithBaseURL(token, baseURL string) *EventbriteClient {
	client := NewEventbriteClient(token)
	client.baseURL = baseURL
	return client
}

// Query returns candidate events near the origin, optionally constrained by
// a category keyword.
func (e *EventbriteClient) Query(ctx context.Context, origin models.Coordinate, category string) ([]models.CandidateEvent, error) {
	if e.token == "" {
		return nil, fmt.Errorf("eventbrite token not configured")
	}

	query := url.Values{}
	query.Set("location.latitude", strconv.FormatFloat(origin.Lat, 'f', -1, 64))
	query.Set("location.longitude", strconv.FormatFloat(origin.Lng, 'f', -1, 64))
	query.Set("location.within", "5km")
	query.Set("expand", "venue,category")
	if category != "" {
		query.Set("q", category)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create eventbrite request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.token)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("eventbrite request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("eventbrite rate limit exceeded")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("eventbrite returned status %d", resp.StatusCode)
	}

	var parsed eventbriteResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode eventbrite response: %w", err)
	}

	candidates := make([]models.CandidateEvent, 0, len(parsed.Events))
	for _, event := range parsed.Events {
		candidate := models.CandidateEvent{
			FeedID:   event.ID,
			Title:    event.Name.Text,
			Venue:    event.Venue.Name,
			Category: event.Category.Name,
			Date:     event.Start.Local,
			URL:      event.URL,
			Source:   "eventbrite",
		}

		lat, latErr := strconv.ParseFloat(event.Venue.Latitude, 64)
		lng, lngErr := strconv.ParseFloat(event.Venue.Longitude, 64)
		if latErr == nil && lngErr == nil {
			coord := models.Coordinate{Lat: lat, Lng: lng}
			if coord.Valid() {
				candidate.Coordinate = &coord
			}
		}

		candidates = append(candidates, candidate)
	}

	return candidates, nil
}
