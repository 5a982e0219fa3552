package api

import (
	"errors"
	"net/http"

	"vision2schedule-backend/internal/models"
	"vision2schedule-backend/internal/nearby"
)

// NearbyResponse lists ranked matches for a venue search.
type NearbyResponse struct {
	Venue   string                     `json:"venue"`
	Mode    models.SearchMode          `json:"mode"`
	Results []models.RankedNearbyEvent `json:"results"`
}

// handleNearby searches external feeds for events around a venue.
// Query parameters: venue (required), category (required unless show_all),
// show_all=true to drop the category filter.
func (s *Server) handleNearby(w http.ResponseWriter, r *http.Request) {
	venue := r.URL.Query().Get("venue")
	if venue == "" {
		respondError(w, http.StatusBadRequest, "venue query parameter is required")
		return
	}

	category := r.URL.Query().Get("category")
	mode := models.SearchModeSameCategory
	if r.URL.Query().Get("show_all") == "true" {
		mode = models.SearchModeAllNearby
	}

	if mode == models.SearchModeSameCategory {
		if category == "" {
			respondError(w, http.StatusBadRequest, "category is required unless show_all=true")
			return
		}
		if !models.ValidateCategory(category) {
			respondError(w, http.StatusBadRequest, "unknown category: "+category)
			return
		}
	}

	results, err := s.nearby.FindNearby(r.Context(), venue, category, mode)
	if err != nil {
		switch {
		case errors.Is(err, nearby.ErrVenueNotResolved):
			respondError(w, http.StatusUnprocessableEntity, "could not resolve venue to a location")
		case errors.Is(err, nearby.ErrFeedUnavailable):
			respondError(w, http.StatusServiceUnavailable, "event feeds are unavailable, try again later")
		default:
			respondError(w, http.StatusInternalServerError, "nearby search failed")
		}
		return
	}

	respondData(w, http.StatusOK, NearbyResponse{
		Venue:   venue,
		Mode:    mode,
		Results: results,
	})
}
