package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hazemadel/staffdeck-be/internal/ledger"
	"github.com/hazemadel/staffdeck-be/internal/models"
)

// EventServiceProvider defines the interface for catered-event services,
// including the per-event pay tracking view.
type EventServiceProvider interface {
	GetAllEvents() ([]models.Event, error)
	GetEventByID(id string) (models.Event, error)
	CreateEvent(event models.Event) (models.Event, error)
	UpdateEvent(id string, event models.Event) (models.Event, error)
	DeleteEvent(id string) error
	CompleteEvent(id string) (models.Event, error)
	AssignServer(eventID, serverID string, amountDue float64) (models.EventPayEntry, error)
	UnassignServer(eventID, serverID string) error
	MarkServerPaid(eventID, serverID string, amountPaid *float64, method models.PaymentMethod, notes string) (models.EventPayEntry, error)
	EntriesForServer(serverID string) ([]models.EventPayEntry, error)
}

// EventService provides business logic for catered events and the amount
// due/paid bookkeeping per assigned server. This view is deliberately kept
// independent of the server-wide payment ledger.
type EventService struct {
	db       *sql.DB
	activity ActivityServiceProvider
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB, activity ActivityServiceProvider) *EventService {
	return &EventService{db: db, activity: activity}
}

// GetAllEvents lists events, newest first. Assignments are not loaded here.
func (s *EventService) GetAllEvents() ([]models.Event, error) {
	rows, err := s.db.Query("SELECT id, name, event_type, event_date, location, caterer_id, notes, completed, created_at FROM events ORDER BY event_date DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// GetEventByID retrieves an event with its server pay entries.
func (s *EventService) GetEventByID(id string) (models.Event, error) {
	row := s.db.QueryRow("SELECT id, name, event_type, event_date, location, caterer_id, notes, completed, created_at FROM events WHERE id = ?", id)
	event, err := scanEvent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Event{}, fmt.Errorf("event with id %s: %w", id, ledger.ErrNotFound)
		}
		return models.Event{}, err
	}

	rows, err := s.db.Query(`
	SELECT es.event_id, es.server_id, s.name, e.name, e.event_date, es.amount_due, es.amount_paid, es.is_paid, es.payment_date, es.payment_method, es.notes
	FROM event_servers es
	JOIN servers s ON s.id = es.server_id
	JOIN events e ON e.id = es.event_id
	WHERE es.event_id = ?
	ORDER BY s.name`, id)
	if err != nil {
		return models.Event{}, err
	}
	defer rows.Close()

	for rows.Next() {
		entry, err := scanNamedPayEntry(rows)
		if err != nil {
			return models.Event{}, err
		}
		event.Servers = append(event.Servers, entry)
	}
	return event, rows.Err()
}

// CreateEvent adds a new catered occasion to the calendar.
func (s *EventService) CreateEvent(event models.Event) (models.Event, error) {
	if event.Name == "" {
		return models.Event{}, fmt.Errorf("event name is required: %w", ledger.ErrValidation)
	}
	if event.Type == "" {
		event.Type = models.EventOther
	}

	event.ID = uuid.New().String()
	event.Completed = false
	event.CreatedAt = time.Now()

	stmt, err := s.db.Prepare(`
	INSERT INTO events(id, name, event_type, event_date, location, caterer_id, notes, completed, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return models.Event{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(event.ID, event.Name, string(event.Type), event.Date, event.Location, event.CatererID, event.Notes, event.Completed, event.CreatedAt)
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to write event to database: %w", err)
	}

	log.Info().Str("event_id", event.ID).Str("event_name", event.Name).Msg("Created event")
	return event, nil
}

// UpdateEvent updates an event's basic fields.
func (s *EventService) UpdateEvent(id string, event models.Event) (models.Event, error) {
	if _, err := s.GetEventByID(id); err != nil {
		return models.Event{}, err
	}

	_, err := s.db.Exec("UPDATE events SET name = ?, event_type = ?, event_date = ?, location = ?, caterer_id = ?, notes = ? WHERE id = ?",
		event.Name, string(event.Type), event.Date, event.Location, event.CatererID, event.Notes, id)
	if err != nil {
		return models.Event{}, err
	}
	return s.GetEventByID(id)
}

// DeleteEvent removes an event and its pay entries.
func (s *EventService) DeleteEvent(id string) error {
	event, err := s.GetEventByID(id)
	if err != nil {
		return err
	}

	_, err = s.db.Exec("DELETE FROM events WHERE id = ?", id)
	if err == nil {
		s.activity.Record("event.delete", "warn", fmt.Sprintf("Event '%s' was deleted.", event.Name), nil)
	}
	return err
}

// CompleteEvent marks an event as worked and credits each assigned server's
// earnings with its amount due. This is the only path that grows a server's
// balance; it runs once per event.
func (s *EventService) CompleteEvent(id string) (models.Event, error) {
	event, err := s.GetEventByID(id)
	if err != nil {
		return models.Event{}, err
	}
	if event.Completed {
		return models.Event{}, fmt.Errorf("event '%s' is already completed: %w", event.Name, ledger.ErrValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Event{}, err
	}
	defer tx.Rollback()

	for _, entry := range event.Servers {
		_, err = tx.Exec("UPDATE servers SET total_events = total_events + 1, total_earnings = total_earnings + ? WHERE id = ?",
			entry.AmountDue, entry.ServerID)
		if err != nil {
			return models.Event{}, err
		}
	}
	if _, err = tx.Exec("UPDATE events SET completed = 1 WHERE id = ?", id); err != nil {
		return models.Event{}, err
	}
	if err = tx.Commit(); err != nil {
		return models.Event{}, err
	}

	s.activity.Record("event.complete", "info", fmt.Sprintf("Event '%s' completed, %d servers credited.", event.Name, len(event.Servers)), nil)
	log.Info().Str("event_id", id).Int("servers", len(event.Servers)).Msg("Completed event")
	return s.GetEventByID(id)
}

// AssignServer creates the amount-due entry for a server on an event. A zero
// amountDue falls back to the server's stored rate.
func (s *EventService) AssignServer(eventID, serverID string, amountDue float64) (models.EventPayEntry, error) {
	event, err := s.GetEventByID(eventID)
	if err != nil {
		return models.EventPayEntry{}, err
	}

	var serverName string
	var rate float64
	row := s.db.QueryRow("SELECT name, price_per_event FROM servers WHERE id = ?", serverID)
	if err := row.Scan(&serverName, &rate); err != nil {
		if err == sql.ErrNoRows {
			return models.EventPayEntry{}, fmt.Errorf("server with id %s: %w", serverID, ledger.ErrNotFound)
		}
		return models.EventPayEntry{}, err
	}

	if amountDue < 0 {
		return models.EventPayEntry{}, fmt.Errorf("amount due cannot be negative: %w", ledger.ErrInvalidAmount)
	}
	if amountDue == 0 {
		amountDue = rate
	}

	_, err = s.db.Exec(`
	INSERT INTO event_servers(event_id, server_id, amount_due, amount_paid, is_paid)
	VALUES(?, ?, ?, 0, 0)`, eventID, serverID, amountDue)
	if err != nil {
		return models.EventPayEntry{}, fmt.Errorf("failed to assign server: %w", err)
	}

	s.activity.Record("event.assign", "info",
		fmt.Sprintf("Server '%s' assigned to '%s' for %s.", serverName, event.Name, ledger.FormatCurrency(amountDue)),
		&serverID)

	return models.EventPayEntry{
		EventID:    eventID,
		ServerID:   serverID,
		ServerName: serverName,
		EventName:  event.Name,
		EventDate:  event.Date,
		AmountDue:  amountDue,
	}, nil
}

// UnassignServer removes a server's pay entry from an event.
func (s *EventService) UnassignServer(eventID, serverID string) error {
	res, err := s.db.Exec("DELETE FROM event_servers WHERE event_id = ? AND server_id = ?", eventID, serverID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no assignment for server %s on event %s: %w", serverID, eventID, ledger.ErrNotFound)
	}
	return nil
}

// MarkServerPaid records a payment against the per-event view. When
// amountPaid is nil the full amount due is assumed. The paid flag is a plain
// threshold, not a clamped balance.
func (s *EventService) MarkServerPaid(eventID, serverID string, amountPaid *float64, method models.PaymentMethod, notes string) (models.EventPayEntry, error) {
	entry, err := s.getPayEntry(eventID, serverID)
	if err != nil {
		return models.EventPayEntry{}, err
	}

	paid := entry.AmountDue
	if amountPaid != nil {
		if err := ledger.ValidateAmount(*amountPaid); err != nil {
			return models.EventPayEntry{}, err
		}
		paid = *amountPaid
	}

	if method == "" {
		method = models.MethodCash
	}
	if !method.Valid() {
		return models.EventPayEntry{}, fmt.Errorf("unknown payment method %q: %w", method, ledger.ErrValidation)
	}

	now := time.Now()
	isPaid := paid >= entry.AmountDue

	_, err = s.db.Exec(`
	UPDATE event_servers
	SET amount_paid = ?, is_paid = ?, payment_date = ?, payment_method = ?, notes = ?
	WHERE event_id = ? AND server_id = ?`,
		paid, isPaid, now, string(method), notes, eventID, serverID)
	if err != nil {
		return models.EventPayEntry{}, err
	}

	entry.AmountPaid = paid
	entry.IsPaid = isPaid
	entry.PaymentDate = &now
	entry.PaymentMethod = string(method)
	entry.Notes = notes

	s.activity.Record("event.payment", "info",
		fmt.Sprintf("Paid %s of %s due for event %s.", ledger.FormatCurrency(paid), ledger.FormatCurrency(entry.AmountDue), eventID),
		&serverID)
	return entry, nil
}

// EntriesForServer loads all pay entries for one server across events,
// oldest event first. Period filtering happens in the payroll package.
func (s *EventService) EntriesForServer(serverID string) ([]models.EventPayEntry, error) {
	rows, err := s.db.Query(`
	SELECT es.event_id, es.server_id, e.name, e.event_date, es.amount_due, es.amount_paid, es.is_paid, es.payment_date, es.payment_method, es.notes
	FROM event_servers es
	JOIN events e ON e.id = es.event_id
	WHERE es.server_id = ?
	ORDER BY e.event_date ASC`, serverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.EventPayEntry
	for rows.Next() {
		entry, err := scanPayEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// getPayEntry loads one (event, server) pay entry.
func (s *EventService) getPayEntry(eventID, serverID string) (models.EventPayEntry, error) {
	row := s.db.QueryRow(`
	SELECT es.event_id, es.server_id, e.name, e.event_date, es.amount_due, es.amount_paid, es.is_paid, es.payment_date, es.payment_method, es.notes
	FROM event_servers es
	JOIN events e ON e.id = es.event_id
	WHERE es.event_id = ? AND es.server_id = ?`, eventID, serverID)

	entry, err := scanPayEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.EventPayEntry{}, fmt.Errorf("no assignment for server %s on event %s: %w", serverID, eventID, ledger.ErrNotFound)
		}
		return models.EventPayEntry{}, err
	}
	return entry, nil
}

// scanEvent scans an event row from either a *sql.Row or *sql.Rows.
func scanEvent(scanner interface{ Scan(...interface{}) error }) (models.Event, error) {
	var event models.Event
	var eventType string
	var eventDate sql.NullTime
	var location, notes sql.NullString
	var catererID sql.NullString
	err := scanner.Scan(&event.ID, &event.Name, &eventType, &eventDate, &location, &catererID, &notes, &event.Completed, &event.CreatedAt)
	if err != nil {
		return models.Event{}, err
	}
	event.Type = models.EventType(eventType)
	event.Date = eventDate.Time
	event.Location = location.String
	event.Notes = notes.String
	if catererID.Valid {
		event.CatererID = &catererID.String
	}
	return event, nil
}

// scanPayEntry scans an event pay entry joined with its event.
func scanPayEntry(scanner interface{ Scan(...interface{}) error }) (models.EventPayEntry, error) {
	var entry models.EventPayEntry
	var eventDate, paymentDate sql.NullTime
	var method, notes sql.NullString
	err := scanner.Scan(&entry.EventID, &entry.ServerID, &entry.EventName, &eventDate, &entry.AmountDue, &entry.AmountPaid, &entry.IsPaid, &paymentDate, &method, &notes)
	if err != nil {
		return models.EventPayEntry{}, err
	}
	entry.EventDate = eventDate.Time
	if paymentDate.Valid {
		entry.PaymentDate = &paymentDate.Time
	}
	entry.PaymentMethod = method.String
	entry.Notes = notes.String
	return entry, nil
}

// scanNamedPayEntry scans a pay entry joined with both server and event names.
func scanNamedPayEntry(scanner interface{ Scan(...interface{}) error }) (models.EventPayEntry, error) {
	var entry models.EventPayEntry
	var eventDate, paymentDate sql.NullTime
	var method, notes sql.NullString
	err := scanner.Scan(&entry.EventID, &entry.ServerID, &entry.ServerName, &entry.EventName, &eventDate, &entry.AmountDue, &entry.AmountPaid, &entry.IsPaid, &paymentDate, &method, &notes)
	if err != nil {
		return models.EventPayEntry{}, err
	}
	entry.EventDate = eventDate.Time
	if paymentDate.Valid {
		entry.PaymentDate = &paymentDate.Time
	}
	entry.PaymentMethod = method.String
	entry.Notes = notes.String
	return entry, nil
}
