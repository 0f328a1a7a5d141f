package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/hazemadel/staffdeck-be/internal/models"
	"github.com/hazemadel/staffdeck-be/internal/services"
)

// CatererHandler handles HTTP requests for the caterer list.
type CatererHandler struct {
	service services.CatererServiceProvider
}

// NewCatererHandler creates a new CatererHandler.
func NewCatererHandler(service services.CatererServiceProvider) *CatererHandler {
	return &CatererHandler{service: service}
}

// GetAll lists all caterers.
func (h *CatererHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	caterers, err := h.service.GetAllCaterers()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve caterers")
		http.Error(w, "Failed to retrieve caterers", http.StatusInternalServerError)
		return
	}
	if caterers == nil {
		caterers = []models.Caterer{}
	}
	writeJSON(w, http.StatusOK, caterers)
}

// Create adds a new caterer.
func (h *CatererHandler) Create(w http.ResponseWriter, r *http.Request) {
	var caterer models.Caterer
	if err := json.NewDecoder(r.Body).Decode(&caterer); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateCaterer(caterer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Delete removes a caterer.
func (h *CatererHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCaterer(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
