package models

import "time"

// Server represents a single staff member (waiter) on the agency roster.
type Server struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone,omitempty"`
	Email         string          `json:"email,omitempty"`
	TotalEvents   int             `json:"totalEvents"`
	TotalEarnings float64         `json:"totalEarnings"` // remaining balance, not the original total
	Available     bool            `json:"available"`
	PricePerEvent float64         `json:"pricePerEvent"`
	Payments      []PaymentRecord `json:"payments"` // insertion order = chronological order
	CreatedAt     time.Time       `json:"createdAt"`
}

// ServerDetails is a Server enriched with derived figures for the detail view.
type ServerDetails struct {
	Server
	DerivedPricePerEvent float64         `json:"derivedPricePerEvent"`
	TotalPaid            float64         `json:"totalPaid"`
	OriginalEarnings     float64         `json:"originalEarnings"`
	RecentEvents         []EventPayEntry `json:"recentEvents"`
}

// DashboardStats aggregates roster-wide figures for the dashboard view.
type DashboardStats struct {
	TotalServers       int     `json:"totalServers"`
	AvailableServers   int     `json:"availableServers"`
	TotalEvents        int     `json:"totalEvents"`
	OutstandingBalance float64 `json:"outstandingBalance"`
}
