package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"vision2schedule-backend/internal/models"
)

// GeocodingClient resolves venue strings to coordinates using the Google
// Maps Geocoding API. It implements nearby.GeoResolver.
type GeocodingClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// geocodeResponse mirrors the relevant part of the Geocoding API payload.
type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	ErrorMessage string `json:"error_message"`
}

// NewGeocodingClient creates a Google Maps Geocoding client.
func NewGeocodingClient(apiKey string) *GeocodingClient {
	return &GeocodingClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://maps.googleapis.com/maps/api/geocode/json",
		apiKey:     apiKey,
	}
}

// NewGeocodingClientWithBaseURL creates a client pointed at a custom endpoint.
func NewGeocodingClientWithBaseURL(apiKey, baseURL string) *GeocodingClient {
	client := NewGeocodingClient(apiKey)
	client.baseURL = baseURL
	return client
}

// Resolve geocodes a venue string. An unknown venue returns (nil, nil);
// transport and API failures return a non-nil error.
func (g *GeocodingClient) Resolve(ctx context.Context, venue string) (*models.Coordinate, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("geocoding api key not configured")
	}

	query := url.Values{}
	query.Set("address", venue)
	query.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode returned status %d", resp.StatusCode)
	}

	var parsed geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	switch parsed.Status {
	case "OK":
		// fall through
	case "ZERO_RESULTS":
		return nil, nil
	default:
		return nil, fmt.Errorf("geocode api status %s: %s", parsed.Status, parsed.ErrorMessage)
	}

	if len(parsed.Results) == 0 {
		return nil, nil
	}

	location := parsed.Results[0].Geometry.Location
	coord := models.Coordinate{Lat: location.Lat, Lng: location.Lng}
	if !coord.Valid() {
		return nil, fmt.Errorf("geocode returned out-of-range coordinate (%f, %f)", coord.Lat, coord.Lng)
	}

	return &coord, nil
}
