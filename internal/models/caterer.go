package models

import "time"

// Caterer is a third-party food provider associated with events, tracked
// for reporting only.
type Caterer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Specialty string    `json:"specialty,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
