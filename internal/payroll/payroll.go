// Package payroll rolls per-event pay entries into summary totals and shapes
// the data handed to the payslip renderer. All functions here are pure; the
// entries are fetched by the caller.
package payroll

import (
	"time"

	"github.com/hazemadel/staffdeck-be/internal/models"
)

// Summarize computes payroll totals over a set of pay entries. An empty set
// yields an all-zero summary.
func Summarize(entries []models.EventPayEntry) models.PayrollSummary {
	summary := models.PayrollSummary{TotalEvents: len(entries)}
	for _, e := range entries {
		summary.TotalEarnings += e.AmountDue
		summary.TotalPaid += e.AmountPaid
	}
	summary.TotalPending = summary.TotalEarnings - summary.TotalPaid
	return summary
}

// FilterByPeriod keeps the entries whose event date falls in [start, end].
// A zero start or end leaves that side of the range unbounded.
func FilterByPeriod(entries []models.EventPayEntry, start, end time.Time) []models.EventPayEntry {
	var filtered []models.EventPayEntry
	for _, e := range entries {
		if !start.IsZero() && e.EventDate.Before(start) {
			continue
		}
		if !end.IsZero() && e.EventDate.After(end) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

// ProgressPercent returns how much of the amount due has been paid, as a
// percentage. A zero (or negative) due amount yields 0, never NaN.
func ProgressPercent(paid, due float64) float64 {
	if due <= 0 {
		return 0
	}
	return paid / due * 100
}

// BuildPayslip assembles the renderer-facing payslip structure for a server
// and pay period from its pay entries.
func BuildPayslip(srv models.Server, start, end time.Time, entries []models.EventPayEntry) models.PayslipData {
	inPeriod := FilterByPeriod(entries, start, end)
	return models.PayslipData{
		Server:      srv,
		PeriodStart: start,
		PeriodEnd:   end,
		Entries:     inPeriod,
		Summary:     Summarize(inPeriod),
		GeneratedAt: time.Now(),
	}
}
