package models

import "time"

// PayrollSummary rolls a server's per-event pay entries over a period into
// totals. It is derived on demand and never persisted.
type PayrollSummary struct {
	TotalEvents   int     `json:"totalEvents"`
	TotalEarnings float64 `json:"totalEarnings"` // sum of amounts due
	TotalPaid     float64 `json:"totalPaid"`
	TotalPending  float64 `json:"totalPending"`
}

// PayslipData is everything the payslip renderer needs for one server and
// pay period.
type PayslipData struct {
	Server      Server          `json:"server"`
	PeriodStart time.Time       `json:"periodStart"`
	PeriodEnd   time.Time       `json:"periodEnd"`
	Entries     []EventPayEntry `json:"entries"`
	Summary     PayrollSummary  `json:"summary"`
	GeneratedAt time.Time       `json:"generatedAt"`
}
