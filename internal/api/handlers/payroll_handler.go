package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hazemadel/staffdeck-be/internal/services"
)

// PayrollHandler handles payroll summary and payslip requests.
type PayrollHandler struct {
	service services.PayrollServiceProvider
}

// NewPayrollHandler creates a new PayrollHandler.
func NewPayrollHandler(service services.PayrollServiceProvider) *PayrollHandler {
	return &PayrollHandler{service: service}
}

// Summary returns payroll totals for a server over an optional date range
// given as ?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *PayrollHandler) Summary(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.period(w, r)
	if !ok {
		return
	}

	summary, err := h.service.GetSummary(chi.URLParam(r, "id"), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Payslip returns the payslip data structure as JSON.
func (h *PayrollHandler) Payslip(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.period(w, r)
	if !ok {
		return
	}

	data, err := h.service.GetPayslip(chi.URLParam(r, "id"), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// PayslipHTML renders the printable payslip document.
func (h *PayrollHandler) PayslipHTML(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.period(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.service.RenderPayslip(w, chi.URLParam(r, "id"), start, end); err != nil {
		writeError(w, err)
	}
}

// period parses the optional start/end query parameters.
func (h *PayrollHandler) period(w http.ResponseWriter, r *http.Request) (start, end time.Time, ok bool) {
	var err error
	start, err = parseDate(r.URL.Query().Get("start"))
	if err != nil {
		http.Error(w, "Invalid start date", http.StatusBadRequest)
		return start, end, false
	}
	end, err = parseDate(r.URL.Query().Get("end"))
	if err != nil {
		http.Error(w, "Invalid end date", http.StatusBadRequest)
		return start, end, false
	}
	return start, end, true
}
