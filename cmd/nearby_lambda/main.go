package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"vision2schedule-backend/internal/models"
	"vision2schedule-backend/internal/nearby"
	"vision2schedule-backend/internal/services"
)

// NearbyAPIResponse represents the Lambda response
type NearbyAPIResponse struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// ResponseBody represents the response body structure
type ResponseBody struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

var matcher *nearby.Matcher

func init() {
	mapsAPIKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if mapsAPIKey == "" {
		log.Fatal("GOOGLE_MAPS_API_KEY environment variable not set")
	}

	resolver := services.NewGeocodingClient(mapsAPIKey)
	feeds := []nearby.EventFeed{services.NewPlacesClient(mapsAPIKey)}
	if token := os.Getenv("EVENTBRITE_API_TOKEN"); token != "" {
		feeds = append(feeds, services.NewEventbriteClient(token))
	}

	matcher = nearby.NewMatcher(resolver, services.NewCombinedFeed(feeds...))
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (NearbyAPIResponse, error) {
	headers := map[string]string{
		"Access-Control-Allow-Origin": "*",
		"Content-Type":                "application/json",
	}

	if request.HTTPMethod == "OPTIONS" {
		return NearbyAPIResponse{StatusCode: 200, Headers: headers}, nil
	}

	if request.HTTPMethod != "GET" || request.Path != "/nearby" {
		return respond(headers, 404, ResponseBody{Success: false, Error: "Not found"}), nil
	}

	params := request.QueryStringParameters
	venue := params["venue"]
	if venue == "" {
		return respond(headers, 400, ResponseBody{Success: false, Error: "venue query parameter is required"}), nil
	}

	category := params["category"]
	mode := models.SearchModeSameCategory
	if params["show_all"] == "true" {
		mode = models.SearchModeAllNearby
	}
	if mode == models.SearchModeSameCategory && category == "" {
		return respond(headers, 400, ResponseBody{Success: false, Error: "category is required unless show_all=true"}), nil
	}

	log.Printf("Nearby search: venue=%q category=%q mode=%s", venue, category, mode)

	results, err := matcher.FindNearby(ctx, venue, category, mode)
	if err != nil {
		switch {
		case errors.Is(err, nearby.ErrVenueNotResolved):
			return respond(headers, 422, ResponseBody{Success: false, Error: "could not resolve venue to a location"}), nil
		case errors.Is(err, nearby.ErrFeedUnavailable):
			return respond(headers, 503, ResponseBody{Success: false, Error: "event feeds are unavailable"}), nil
		default:
			log.Printf("Nearby search failed: %v", err)
			return respond(headers, 500, ResponseBody{Success: false, Error: "nearby search failed"}), nil
		}
	}

	return respond(headers, 200, ResponseBody{Success: true, Data: results}), nil
}

func respond(headers map[string]string, statusCode int, body ResponseBody) NearbyAPIResponse {
	bodyJSON, err := json.Marshal(body)
	if err != nil {
		log.Printf("Error marshaling response body: %v", err)
		return NearbyAPIResponse{
			StatusCode: 500,
			Headers:    headers,
			Body:       `{"success":false,"error":"Internal server error"}`,
		}
	}

	return NearbyAPIResponse{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       string(bodyJSON),
	}
}

func main() {
	lambda.Start(handleRequest)
}
