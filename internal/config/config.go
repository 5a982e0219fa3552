package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration for the backend service.
type Config struct {
	ListenAddr       string
	OCRSpaceAPIKey   string
	GoogleMapsAPIKey string
	EventbriteToken  string
	OpenAIAPIKey     string
	JWTSecret        string
	JWTExpiry        time.Duration
	UsersTable       string
	EventsTable      string
	ScansTable       string
	FlyerBucket      string
	AWSRegion        string
	SearchRadiusKm   float64
	AssistThreshold  int
}

// FromEnv creates a configuration instance sourced from environment variables.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ListenAddr:       getEnv("V2S_LISTEN_ADDR", ":8080"),
		OCRSpaceAPIKey:   getEnv("OCR_SPACE_API_KEY", ""),
		GoogleMapsAPIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
		EventbriteToken:  getEnv("EVENTBRITE_API_TOKEN", ""),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		JWTSecret:        getEnv("V2S_JWT_SECRET", ""),
		JWTExpiry:        24 * time.Hour,
		UsersTable:       getEnv("V2S_USERS_TABLE", "v2s-users"),
		EventsTable:      getEnv("V2S_EVENTS_TABLE", "v2s-events"),
		ScansTable:       getEnv("V2S_SCANS_TABLE", "v2s-scans"),
		FlyerBucket:      getEnv("V2S_FLYER_BUCKET", "v2s-flyers"),
		AWSRegion:        getEnv("AWS_REGION", "us-west-2"),
		SearchRadiusKm:   5.0,
		AssistThreshold:  50,
	}

	if radius := os.Getenv("V2S_SEARCH_RADIUS_KM"); radius != "" {
		if _, err := fmt.Sscanf(radius, "%f", &cfg.SearchRadiusKm); err != nil {
			return Config{}, fmt.Errorf("parse V2S_SEARCH_RADIUS_KM: %w", err)
		}
	}

	if expiry := os.Getenv("V2S_JWT_EXPIRY_H"); expiry != "" {
		var hours int
		if _, err := fmt.Sscanf(expiry, "%d", &hours); err != nil {
			return Config{}, fmt.Errorf("parse V2S_JWT_EXPIRY_H: %w", err)
		}
		cfg.JWTExpiry = time.Duration(hours) * time.Hour
	}

	if threshold := os.Getenv("V2S_ASSIST_THRESHOLD"); threshold != "" {
		if _, err := fmt.Sscanf(threshold, "%d", &cfg.AssistThreshold); err != nil {
			return Config{}, fmt.Errorf("parse V2S_ASSIST_THRESHOLD: %w", err)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
