package main

import (
	"context"
	"log"
	"net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"vision2schedule-backend/internal/api"
	"vision2schedule-backend/internal/auth"
	"vision2schedule-backend/internal/config"
	"vision2schedule-backend/internal/extraction"
	"vision2schedule-backend/internal/nearby"
	"vision2schedule-backend/internal/services"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("V2S_JWT_SECRET environment variable not set")
	}
	if cfg.OCRSpaceAPIKey == "" {
		log.Fatal("OCR_SPACE_API_KEY environment variable not set")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}

	store := services.NewDynamoDBService(
		dynamodb.NewFromConfig(awsCfg),
		cfg.UsersTable,
		cfg.EventsTable,
		cfg.ScansTable,
	)

	authService := auth.NewService(store, cfg.JWTSecret, cfg.JWTExpiry)

	var suggester api.FieldSuggester
	if cfg.OpenAIAPIKey != "" {
		suggester = services.NewOpenAIClient(cfg.OpenAIAPIKey)
	}

	var archive api.FlyerArchive
	if cfg.FlyerBucket != "" {
		s3Client, err := services.NewS3ClientWithConfig(services.S3Config{
			BucketName: cfg.FlyerBucket,
			Region:     cfg.AWSRegion,
		})
		if err != nil {
			log.Fatalf("Failed to create S3 client: %v", err)
		}
		archive = s3Client
	}

	resolver := services.NewGeocodingClient(cfg.GoogleMapsAPIKey)
	feed := services.NewCombinedFeed(
		services.NewPlacesClient(cfg.GoogleMapsAPIKey),
		services.NewEventbriteClient(cfg.EventbriteToken),
	)
	matcher := nearby.NewMatcherWithConfig(resolver, feed, nearby.Config{RadiusKm: cfg.SearchRadiusKm})

	server := api.NewServer(api.ServerConfig{
		Auth:            authService,
		Store:           store,
		OCR:             services.NewOCRSpaceClient(cfg.OCRSpaceAPIKey),
		Pipeline:        extraction.NewPipeline(),
		Suggester:       suggester,
		Archive:         archive,
		Nearby:          matcher,
		AssistThreshold: cfg.AssistThreshold,
	})

	log.Printf("Starting API server on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, server.Router()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
