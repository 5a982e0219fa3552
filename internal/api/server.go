// Package api exposes the HTTP surface: auth, flyer scanning, event CRUD,
// nearby search, and calendar export.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"vision2schedule-backend/internal/auth"
	"vision2schedule-backend/internal/models"
	"vision2schedule-backend/internal/services"
)

// EventStore is the persistence surface the handlers need. The DynamoDB
// service satisfies it.
type EventStore interface {
	CreateEvent(ctx context.Context, event *models.EventRecord) error
	GetEvent(ctx context.Context, userID, eventID string) (*models.EventRecord, error)
	ListUserEvents(ctx context.Context, userID string) ([]models.EventRecord, error)
	DeleteEvent(ctx context.Context, userID, eventID string) error
	CreateScan(ctx context.Context, scan *models.Scan) error
	GetScan(ctx context.Context, userID, scanID string) (*models.Scan, error)
}

// TextExtractor runs OCR on an uploaded flyer image.
type TextExtractor interface {
	ExtractText(ctx context.Context, imageBytes []byte, fileName, contentType string) (*services.OCRResult, error)
}

// FieldSuggester proposes event fields for text the deterministic pipeline
// scored poorly. Optional.
type FieldSuggester interface {
	SuggestEventFields(ctx context.Context, rawText string) (*services.OpenAIAssistResponse, error)
}

// FlyerArchive stores the original upload and its OCR text. Optional;
// archive failures never fail a scan.
type FlyerArchive interface {
	UploadFlyerImage(ctx context.Context, scanID string, imageBytes []byte, contentType string) (*services.S3UploadResult, error)
	UploadRawText(ctx context.Context, scanID, rawText string) (*services.S3UploadResult, error)
}

// NearbyFinder searches external feeds for events around a venue.
type NearbyFinder interface {
	FindNearby(ctx context.Context, venue, category string, mode models.SearchMode) ([]models.RankedNearbyEvent, error)
}

// Extractor turns raw OCR text into a scored event record.
type Extractor interface {
	Extract(rawText string) models.EventRecord
}

// Server wires the service dependencies into HTTP handlers.
type Server struct {
	auth            *auth.Service
	store           EventStore
	ocr             TextExtractor
	pipeline        Extractor
	suggester       FieldSuggester
	archive         FlyerArchive
	nearby          NearbyFinder
	assistThreshold int
}

// ServerConfig collects the dependencies for NewServer. Suggester and
// Archive may be nil.
type ServerConfig struct {
	Auth            *auth.Service
	Store           EventStore
	OCR             TextExtractor
	Pipeline        Extractor
	Suggester       FieldSuggester
	Archive         FlyerArchive
	Nearby          NearbyFinder
	AssistThreshold int
}

// NewServer creates the HTTP server from its dependencies.
func NewServer(cfg ServerConfig) *Server {
	return &Server{
		auth:            cfg.Auth,
		store:           cfg.Store,
		ocr:             cfg.OCR,
		pipeline:        cfg.Pipeline,
		suggester:       cfg.Suggester,
		archive:         cfg.Archive,
		nearby:          cfg.Nearby,
		assistThreshold: cfg.AssistThreshold,
	}
}

// Router builds the chi router with all routes registered.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Post("/scans", s.handleCreateScan)
		r.Get("/scans/{scanID}", s.handleGetScan)

		r.Post("/events", s.handleCreateEvent)
		r.Get("/events", s.handleListEvents)
		r.Get("/events/{eventID}", s.handleGetEvent)
		r.Delete("/events/{eventID}", s.handleDeleteEvent)
		r.Get("/events/{eventID}/calendar.ics", s.handleEventCalendar)

		r.Get("/nearby", s.handleNearby)
	})

	return r
}

// ResponseBody is the JSON envelope every endpoint uses.
type ResponseBody struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, statusCode int, body ResponseBody) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding response body: %v", err)
	}
}

func respondData(w http.ResponseWriter, statusCode int, data interface{}) {
	respondJSON(w, statusCode, ResponseBody{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, ResponseBody{Success: false, Error: message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, ResponseBody{Success: true, Message: "ok"})
}
