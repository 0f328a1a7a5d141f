package services

import (
	"io"
	"time"

	"github.com/hazemadel/staffdeck-be/internal/models"
	"github.com/hazemadel/staffdeck-be/internal/payroll"
)

// PayrollServiceProvider defines the interface for payroll summaries and
// payslip generation.
type PayrollServiceProvider interface {
	GetSummary(serverID string, start, end time.Time) (models.PayrollSummary, error)
	GetPayslip(serverID string, start, end time.Time) (models.PayslipData, error)
	RenderPayslip(w io.Writer, serverID string, start, end time.Time) error
}

// PayrollService glues the pure payroll aggregator to the roster and event
// services. Summaries are recomputed per request and never persisted.
type PayrollService struct {
	servers ServerServiceProvider
	events  EventServiceProvider
}

// NewPayrollService creates a new PayrollService.
func NewPayrollService(servers ServerServiceProvider, events EventServiceProvider) *PayrollService {
	return &PayrollService{servers: servers, events: events}
}

// GetSummary aggregates a server's pay entries over an optional date range.
func (s *PayrollService) GetSummary(serverID string, start, end time.Time) (models.PayrollSummary, error) {
	if _, err := s.servers.GetServerByID(serverID); err != nil {
		return models.PayrollSummary{}, err
	}

	entries, err := s.events.EntriesForServer(serverID)
	if err != nil {
		return models.PayrollSummary{}, err
	}
	return payroll.Summarize(payroll.FilterByPeriod(entries, start, end)), nil
}

// GetPayslip assembles the payslip data for a server and pay period.
func (s *PayrollService) GetPayslip(serverID string, start, end time.Time) (models.PayslipData, error) {
	srv, err := s.servers.GetServerByID(serverID)
	if err != nil {
		return models.PayslipData{}, err
	}

	entries, err := s.events.EntriesForServer(serverID)
	if err != nil {
		return models.PayslipData{}, err
	}
	return payroll.BuildPayslip(srv, start, end, entries), nil
}

// RenderPayslip writes the printable payslip document to w.
func (s *PayrollService) RenderPayslip(w io.Writer, serverID string, start, end time.Time) error {
	data, err := s.GetPayslip(serverID, start, end)
	if err != nil {
		return err
	}
	return payroll.RenderPayslipHTML(w, data)
}
