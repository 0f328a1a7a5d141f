package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/hazemadel/staffdeck-be/internal/models"
)

// ActivityServiceProvider defines the interface for the activity feed.
type ActivityServiceProvider interface {
	Record(activityType, level, message string, serverID *string) error
	GetRecent(limit int) ([]models.Activity, error)
}

// ActivityService writes and reads the audit feed of roster and ledger
// actions.
type ActivityService struct {
	db *sql.DB
}

// NewActivityService creates a new ActivityService.
func NewActivityService(db *sql.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Record logs a new entry to the activity feed.
func (s *ActivityService) Record(activityType, level, message string, serverID *string) error {
	entry := models.Activity{
		ID:        uuid.New().String(),
		Type:      activityType,
		Level:     level,
		Message:   message,
		ServerID:  serverID,
		CreatedAt: time.Now(),
	}

	stmt, err := s.db.Prepare("INSERT INTO activity (id, type, level, message, server_id, created_at) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(entry.ID, entry.Type, entry.Level, entry.Message, entry.ServerID, entry.CreatedAt)
	return err
}

// GetRecent retrieves the most recent activity entries.
func (s *ActivityService) GetRecent(limit int) ([]models.Activity, error) {
	rows, err := s.db.Query("SELECT id, type, level, message, server_id, created_at FROM activity ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.Activity
	for rows.Next() {
		var entry models.Activity
		if err := rows.Scan(&entry.ID, &entry.Type, &entry.Level, &entry.Message, &entry.ServerID, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
