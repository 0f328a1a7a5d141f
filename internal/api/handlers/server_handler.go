package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/hazemadel/staffdeck-be/internal/models"
	"github.com/hazemadel/staffdeck-be/internal/services"
)

// ServerHandler handles HTTP requests related to staff members.
type ServerHandler struct {
	service services.ServerServiceProvider
}

// NewServerHandler creates a new ServerHandler.
func NewServerHandler(service services.ServerServiceProvider) *ServerHandler {
	return &ServerHandler{service: service}
}

// GetAll handles the request to get the full roster.
func (h *ServerHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	servers, err := h.service.GetAllServers()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve servers")
		http.Error(w, "Failed to retrieve servers", http.StatusInternalServerError)
		return
	}
	if servers == nil {
		servers = []models.Server{}
	}
	writeJSON(w, http.StatusOK, servers)
}

// Get handles the request to get a single server with its payment history.
func (h *ServerHandler) Get(w http.ResponseWriter, r *http.Request) {
	server, err := h.service.GetServerByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, server)
}

// GetDetails handles the detail view with derived figures and recent events.
func (h *ServerHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.GetServerDetails(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

// Create handles the request to add a staff member.
func (h *ServerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var server models.Server
	if err := json.NewDecoder(r.Body).Decode(&server); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	newServer, err := h.service.CreateServer(server)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newServer)
}

// Update handles contact-detail updates. Earnings and payments are not
// touched here.
func (h *ServerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var server models.Server
	if err := json.NewDecoder(r.Body).Decode(&server); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateServer(chi.URLParam(r, "id"), server)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ToggleAvailability flips whether a server can take new assignments.
func (h *ServerHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	updated, err := h.service.ToggleAvailability(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles the request to remove a staff member.
func (h *ServerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteServer(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PaymentPayload is the body for recording a partial payment.
type PaymentPayload struct {
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
	Notes         string  `json:"notes"`
}

// RecordPayment applies a payment against a server's remaining balance.
func (h *ServerHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload PaymentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	server, payment, err := h.service.RecordPayment(id, payload.Amount, models.PaymentMethod(payload.PaymentMethod), payload.Notes)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Payment recorded successfully",
		"server":  server,
		"payment": payment,
	})
}

// Dashboard returns roster-wide aggregate figures.
func (h *ServerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetDashboardStats()
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute dashboard stats")
		http.Error(w, "Failed to compute dashboard stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
