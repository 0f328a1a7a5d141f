package models

import "time"

// EventType enumerates the kinds of catered occasions the agency staffs.
type EventType string

const (
	EventWedding    EventType = "wedding"
	EventEngagement EventType = "engagement"
	EventBirthday   EventType = "birthday"
	EventOther      EventType = "other"
)

// Event represents a single catered occasion servers are assigned to.
type Event struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      EventType       `json:"type"`
	Date      time.Time       `json:"date"`
	Location  string          `json:"location,omitempty"`
	CatererID *string         `json:"catererId,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	Completed bool            `json:"completed"`
	Servers   []EventPayEntry `json:"servers,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// EventPayEntry tracks what one server is owed and has been paid for one
// event. This view is kept independently of the server's global ledger.
type EventPayEntry struct {
	EventID       string     `json:"eventId"`
	ServerID      string     `json:"serverId"`
	ServerName    string     `json:"serverName,omitempty"`
	EventName     string     `json:"eventName,omitempty"`
	EventDate     time.Time  `json:"eventDate"`
	AmountDue     float64    `json:"amountDue"` // fixed at assignment time
	AmountPaid    float64    `json:"amountPaid"`
	IsPaid        bool       `json:"isPaid"`
	PaymentDate   *time.Time `json:"paymentDate,omitempty"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}
