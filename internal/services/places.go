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

// placesSearchRadiusMeters matches the 5 km nearby search radius.
const placesSearchRadiusMeters = 5000

// PlacesClient finds candidate events around a coordinate using the Google
// Places nearby-search API. It implements nearby.EventFeed.
type PlacesClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

type placesResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID  string `json:"place_id"`
		Name     string `json:"name"`
		Vicinity string `json:"vicinity"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Types []string `json:"types"`
	} `json:"results"`
	ErrorMessage string `json:"error_message"`
}

// NewPlacesClient creates a Google Places client.
func NewPlacesClient(apiKey string) *PlacesClient {
	return &PlacesClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://maps.googleapis.com/maps/api/place/nearbysearch/json",
		apiKey:     apiKey,
	}
}

// NewPlacesClientWithBaseURL creates a client pointed at a custom endpoint.
func NewPlacesClientWithBaseURL(apiKey, baseURL string) *PlacesClient {
	client := NewPlacesClient(apiKey)
	client.baseURL = baseURL
	return client
}

// Query returns candidate events near the origin. The category, when
// non-empty, is passed through as a search keyword; precise category
// filtering stays with the matcher.
func (p *PlacesClient) Query(ctx context.Context, origin models.Coordinate, category string) ([]models.CandidateEvent, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("places api key not configured")
	}

	query := url.Values{}
	query.Set("location", strconv.FormatFloat(origin.Lat, 'f', -1, 64)+","+strconv.FormatFloat(origin.Lng, 'f', -1, 64))
	query.Set("radius", strconv.Itoa(placesSearchRadiusMeters))
	query.Set("key", p.apiKey)
	if category != "" {
		query.Set("keyword", category)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create places request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places returned status %d", resp.StatusCode)
	}

	var parsed placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode places response: %w", err)
	}

	switch parsed.Status {
	case "OK", "ZERO_RESULTS":
		// fall through
	default:
		return nil, fmt.Errorf("places api status %s: %s", parsed.Status, parsed.ErrorMessage)
	}

	candidates := make([]models.CandidateEvent, 0, len(parsed.Results))
	for _, result := range parsed.Results {
		coord := models.Coordinate{
			Lat: result.Geometry.Location.Lat,
			Lng: result.Geometry.Location.Lng,
		}
		candidate := models.CandidateEvent{
			FeedID:   result.PlaceID,
			Title:    result.Name,
			Venue:    result.Vicinity,
			Category: category,
			Source:   "google-places",
		}
		if coord.Valid() {
			candidate.Coordinate = &coord
		}
		candidates = append(candidates, candidate)
	}

	return candidates, nil
}
