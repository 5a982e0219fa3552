package api

import (
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vision2schedule-backend/internal/models"
	"vision2schedule-backend/internal/services"
)

// ScanResponse pairs the stored scan with the event extracted from it.
type ScanResponse struct {
	Scan  *models.Scan        `json:"scan"`
	Event *models.EventRecord `json:"event"`
}

// handleCreateScan accepts a multipart flyer upload, runs OCR and field
// extraction, and persists both the scan and the extracted event.
func (s *Server) handleCreateScan(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	if err := r.ParseMultipartForm(services.MaxFlyerSizeBytes + 1024); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("flyer")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing flyer file field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if err := services.ValidateUpload(contentType, int(header.Size)); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrUploadTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		respondError(w, status, err.Error())
		return
	}

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read upload: "+err.Error())
		return
	}

	ocrResult, err := s.ocr.ExtractText(r.Context(), imageBytes, header.Filename, contentType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOCRUnprocessable):
			respondError(w, http.StatusUnprocessableEntity, "could not extract readable text from the image")
		case errors.Is(err, services.ErrOCRUnavailable):
			respondError(w, http.StatusServiceUnavailable, "text extraction service is unavailable, try again later")
		default:
			respondError(w, http.StatusInternalServerError, "text extraction failed")
		}
		return
	}

	event := s.pipeline.Extract(ocrResult.RawText)
	if s.suggester != nil && event.ConfidenceScore < s.assistThreshold {
		s.applySuggestions(r, ocrResult.RawText, &event)
	}

	now := time.Now().UTC()
	scan := &models.Scan{
		ID:        models.GenerateScanID(header.Filename, now),
		UserID:    userID,
		FileName:  header.Filename,
		RawText:   ocrResult.RawText,
		WordCount: ocrResult.WordCount,
		CreatedAt: now,
	}

	event.ID = models.GenerateEventID(event.Title, event.Date, event.Venue)
	event.UserID = userID
	event.ScanID = scan.ID
	scan.EventID = event.ID

	if s.archive != nil {
		if upload, err := s.archive.UploadFlyerImage(r.Context(), scan.ID, imageBytes, contentType); err != nil {
			log.Printf("Failed to archive flyer image for scan %s: %v", scan.ID, err)
		} else {
			scan.ImageKey = upload.Key
		}
		if _, err := s.archive.UploadRawText(r.Context(), scan.ID, ocrResult.RawText); err != nil {
			log.Printf("Failed to archive OCR text for scan %s: %v", scan.ID, err)
		}
	}

	if err := s.store.CreateScan(r.Context(), scan); err != nil {
		log.Printf("Failed to store scan %s: %v", scan.ID, err)
		respondError(w, http.StatusInternalServerError, "failed to store scan")
		return
	}
	if err := s.store.CreateEvent(r.Context(), &event); err != nil {
		log.Printf("Failed to store event %s: %v", event.ID, err)
		respondError(w, http.StatusInternalServerError, "failed to store extracted event")
		return
	}

	respondData(w, http.StatusCreated, ScanResponse{Scan: scan, Event: &event})
}

// applySuggestions fills fields the deterministic extractors missed with LLM
// suggestions. The confidence score is not changed: it reflects what the
// deterministic pass found.
func (s *Server) applySuggestions(r *http.Request, rawText string, event *models.EventRecord) {
	assist, err := s.suggester.SuggestEventFields(r.Context(), rawText)
	if err != nil {
		log.Printf("Extraction assist failed: %v", err)
		return
	}

	suggestion := assist.Record
	if event.Title == "" {
		event.Title = suggestion.Title
	}
	if event.Date == "" {
		event.Date = suggestion.Date
	}
	if event.Time == "" {
		event.Time = suggestion.Time
	}
	if event.Venue == "" {
		event.Venue = suggestion.Venue
	}
	if event.Organizer == "" {
		event.Organizer = suggestion.Organizer
	}
	if event.Contact == "" {
		event.Contact = suggestion.Contact
	}
	if event.Website == "" {
		event.Website = suggestion.Website
	}
	if event.Category == "" {
		event.Category = suggestion.Category
	}
}

func (s *Server) handleGetScan(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())
	scanID := chi.URLParam(r, "scanID")

	scan, err := s.store.GetScan(r.Context(), userID, scanID)
	if err != nil {
		if errors.Is(err, services.ErrScanNotFound) {
			respondError(w, http.StatusNotFound, "scan not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load scan")
		return
	}

	respondData(w, http.StatusOK, scan)
}
