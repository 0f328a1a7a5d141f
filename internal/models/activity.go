package models

import "time"

// Activity represents a loggable action in the system, e.g. a recorded
// payment or a roster change.
type Activity struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "payment.recorded", "server.create"
	Level     string    `json:"level"` // e.g., "info", "warn", "error"
	Message   string    `json:"message"`
	ServerID  *string   `json:"serverId,omitempty"` // Nullable for system-wide entries
	CreatedAt time.Time `json:"createdAt"`
}
