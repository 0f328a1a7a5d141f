package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/hazemadel/staffdeck-be/internal/models"
	"github.com/hazemadel/staffdeck-be/internal/services"
)

// EventHandler handles HTTP requests related to catered events.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// GetAll lists all events.
func (h *EventHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.GetAllEvents()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve events")
		http.Error(w, "Failed to retrieve events", http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// Get retrieves one event with its assignments.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.service.GetEventByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Create adds a new event to the calendar.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	newEvent, err := h.service.CreateEvent(event)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newEvent)
}

// Update edits an event's basic fields.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateEvent(chi.URLParam(r, "id"), event)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes an event.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteEvent(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Complete marks an event as worked, crediting the assigned servers.
func (h *EventHandler) Complete(w http.ResponseWriter, r *http.Request) {
	event, err := h.service.CompleteEvent(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// AssignPayload is the body for assigning a server to an event.
type AssignPayload struct {
	ServerID  string  `json:"serverId"`
	AmountDue float64 `json:"amountDue"`
}

// AssignServer attaches a server to an event with a fixed amount due.
func (h *EventHandler) AssignServer(w http.ResponseWriter, r *http.Request) {
	var payload AssignPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.service.AssignServer(chi.URLParam(r, "id"), payload.ServerID, payload.AmountDue)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// UnassignServer removes a server's assignment from an event.
func (h *EventHandler) UnassignServer(w http.ResponseWriter, r *http.Request) {
	if err := h.service.UnassignServer(chi.URLParam(r, "id"), chi.URLParam(r, "serverId")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServerPaymentPayload is the body for the per-event payment view. A nil
// amount means the full amount due.
type ServerPaymentPayload struct {
	AmountPaid    *float64 `json:"amountPaid"`
	PaymentMethod string   `json:"paymentMethod"`
	Notes         string   `json:"notes"`
}

// MarkServerPaid updates the per-event amount paid for one server.
func (h *EventHandler) MarkServerPaid(w http.ResponseWriter, r *http.Request) {
	var payload ServerPaymentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.service.MarkServerPaid(
		chi.URLParam(r, "id"),
		chi.URLParam(r, "serverId"),
		payload.AmountPaid,
		models.PaymentMethod(payload.PaymentMethod),
		payload.Notes,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
