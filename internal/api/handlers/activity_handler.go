package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/hazemadel/staffdeck-be/internal/models"
	"github.com/hazemadel/staffdeck-be/internal/services"
)

// ActivityHandler handles HTTP requests for the activity feed.
type ActivityHandler struct {
	service services.ActivityServiceProvider
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(service services.ActivityServiceProvider) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// GetRecent handles the request to get recent activity entries.
func (h *ActivityHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 20 // Default limit
	}

	entries, err := h.service.GetRecent(limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve activity")
		http.Error(w, "Failed to retrieve activity", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []models.Activity{}
	}
	writeJSON(w, http.StatusOK, entries)
}
