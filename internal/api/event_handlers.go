package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vision2schedule-backend/internal/calendar"
	"vision2schedule-backend/internal/models"
	"vision2schedule-backend/internal/services"
)

// handleCreateEvent stores a manually entered or edited event record.
func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	var event models.EventRecord
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if event.Date != "" && !models.IsValidISODate(event.Date) {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if event.Time != "" && !models.IsValid24HourTime(event.Time) {
		respondError(w, http.StatusBadRequest, "time must be HH:MM (24-hour)")
		return
	}
	if event.Category != "" && !models.ValidateCategory(event.Category) {
		respondError(w, http.StatusBadRequest, "unknown category: "+event.Category)
		return
	}

	if event.ID == "" {
		event.ID = models.GenerateEventID(event.Title, event.Date, event.Venue)
	}
	event.UserID = userID

	if err := s.store.CreateEvent(r.Context(), &event); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to store event")
		return
	}

	respondData(w, http.StatusCreated, event)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	events, err := s.store.ListUserEvents(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	respondData(w, http.StatusOK, events)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())
	eventID := chi.URLParam(r, "eventID")

	event, err := s.store.GetEvent(r.Context(), userID, eventID)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			respondError(w, http.StatusNotFound, "event not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load event")
		return
	}

	respondData(w, http.StatusOK, event)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())
	eventID := chi.URLParam(r, "eventID")

	if err := s.store.DeleteEvent(r.Context(), userID, eventID); err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			respondError(w, http.StatusNotFound, "event not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete event")
		return
	}

	respondJSON(w, http.StatusOK, ResponseBody{Success: true, Message: "event deleted"})
}

// handleEventCalendar returns the event as a downloadable .ics file.
func (s *Server) handleEventCalendar(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())
	eventID := chi.URLParam(r, "eventID")

	event, err := s.store.GetEvent(r.Context(), userID, eventID)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			respondError(w, http.StatusNotFound, "event not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load event")
		return
	}

	ics, err := calendar.BuildICS(event)
	if err != nil {
		if errors.Is(err, calendar.ErrDateRequired) {
			respondError(w, http.StatusBadRequest, "event date is required for calendar scheduling")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", eventID+".ics"))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(ics))
}
