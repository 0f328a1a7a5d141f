package services

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hazemadel/staffdeck-be/internal/ledger"
	"github.com/hazemadel/staffdeck-be/internal/models"
	"github.com/hazemadel/staffdeck-be/internal/websocket"
)

// defaultPricePerEvent is used for the detail view when a server has no
// stored rate and no earnings to derive one from.
const defaultPricePerEvent = 150.0

// recentEventsLimit caps the example recent-events block on the detail view.
const recentEventsLimit = 5

// ServerServiceProvider defines the interface for staff roster services.
type ServerServiceProvider interface {
	GetAllServers() ([]models.Server, error)
	GetServerByID(id string) (models.Server, error)
	GetServerDetails(id string) (models.ServerDetails, error)
	CreateServer(server models.Server) (models.Server, error)
	UpdateServer(id string, server models.Server) (models.Server, error)
	ToggleAvailability(id string) (models.Server, error)
	DeleteServer(id string) error
	RecordPayment(id string, amount float64, method models.PaymentMethod, note string) (models.Server, models.PaymentRecord, error)
	GetServersWithOutstandingBalance() ([]models.Server, error)
	GetDashboardStats() (models.DashboardStats, error)
}

// ServerService provides business logic for the staff roster and the
// per-server payment ledger.
type ServerService struct {
	db       *sql.DB
	hub      *websocket.Hub
	activity ActivityServiceProvider

	// paymentLocks serializes RecordPayment per server so concurrent
	// payments cannot interleave the read-modify-write of the balance.
	paymentLocks sync.Map
}

// NewServerService creates a new ServerService. The hub may be nil when no
// dashboard broadcasting is wanted (e.g. in tests).
func NewServerService(db *sql.DB, hub *websocket.Hub, activity ActivityServiceProvider) *ServerService {
	return &ServerService{db: db, hub: hub, activity: activity}
}

// GetAllServers retrieves the full roster. Payment histories are not loaded
// for the list view.
func (s *ServerService) GetAllServers() ([]models.Server, error) {
	rows, err := s.db.Query("SELECT id, name, phone, email, total_events, total_earnings, available, price_per_event, created_at FROM servers ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var servers []models.Server
	for rows.Next() {
		srv, err := scanServer(rows)
		if err != nil {
			return nil, err
		}
		servers = append(servers, srv)
	}
	return servers, rows.Err()
}

// GetServerByID retrieves a single server with its payment history.
func (s *ServerService) GetServerByID(id string) (models.Server, error) {
	row := s.db.QueryRow("SELECT id, name, phone, email, total_events, total_earnings, available, price_per_event, created_at FROM servers WHERE id = ?", id)
	srv, err := scanServer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Server{}, fmt.Errorf("server with id %s: %w", id, ledger.ErrNotFound)
		}
		return models.Server{}, err
	}

	srv.Payments, err = s.paymentsForServer(id)
	if err != nil {
		return models.Server{}, err
	}
	return srv, nil
}

// GetServerDetails returns the server enriched with derived figures and its
// most recent event pay entries.
func (s *ServerService) GetServerDetails(id string) (models.ServerDetails, error) {
	srv, err := s.GetServerByID(id)
	if err != nil {
		return models.ServerDetails{}, err
	}

	details := models.ServerDetails{
		Server:               srv,
		DerivedPricePerEvent: derivePricePerEvent(srv),
		TotalPaid:            ledger.TotalPaid(srv.Payments),
		OriginalEarnings:     ledger.OriginalEarnings(srv),
	}

	rows, err := s.db.Query(`
	SELECT es.event_id, es.server_id, e.name, e.event_date, es.amount_due, es.amount_paid, es.is_paid, es.payment_date, es.payment_method, es.notes
	FROM event_servers es
	JOIN events e ON e.id = es.event_id
	WHERE es.server_id = ?
	ORDER BY e.event_date DESC
	LIMIT ?`, id, recentEventsLimit)
	if err != nil {
		return models.ServerDetails{}, err
	}
	defer rows.Close()

	for rows.Next() {
		entry, err := scanPayEntry(rows)
		if err != nil {
			return models.ServerDetails{}, err
		}
		details.RecentEvents = append(details.RecentEvents, entry)
	}
	return details, rows.Err()
}

// derivePricePerEvent picks the stored rate, falls back to an average over
// worked events while earnings remain, and otherwise a fixed default.
func derivePricePerEvent(srv models.Server) float64 {
	if srv.PricePerEvent > 0 {
		return srv.PricePerEvent
	}
	if srv.TotalEarnings > 0 {
		divisor := srv.TotalEvents
		if divisor < 1 {
			divisor = 1
		}
		return math.Round(srv.TotalEarnings / float64(divisor))
	}
	return defaultPricePerEvent
}

// CreateServer adds a new staff member with zeroed earnings and history.
func (s *ServerService) CreateServer(server models.Server) (models.Server, error) {
	if server.Name == "" {
		return models.Server{}, fmt.Errorf("server name is required: %w", ledger.ErrValidation)
	}

	server.ID = uuid.New().String()
	server.TotalEvents = 0
	server.TotalEarnings = 0
	server.Available = true
	server.Payments = nil
	server.CreatedAt = time.Now()

	stmt, err := s.db.Prepare(`
	INSERT INTO servers(id, name, phone, email, total_events, total_earnings, available, price_per_event, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return models.Server{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(server.ID, server.Name, server.Phone, server.Email, server.TotalEvents, server.TotalEarnings, server.Available, server.PricePerEvent, server.CreatedAt)
	if err != nil {
		return models.Server{}, fmt.Errorf("failed to write server to database: %w", err)
	}

	s.activity.Record("server.create", "info", fmt.Sprintf("Server '%s' joined the roster.", server.Name), &server.ID)
	s.broadcastServerUpdate(server)
	log.Info().Str("server_id", server.ID).Str("server_name", server.Name).Msg("Created server")
	return server, nil
}

// UpdateServer updates contact details and the stored rate. It deliberately
// never touches total_earnings or the payment history; RecordPayment is the
// only write path for those.
func (s *ServerService) UpdateServer(id string, server models.Server) (models.Server, error) {
	if server.Name == "" {
		return models.Server{}, fmt.Errorf("server name is required: %w", ledger.ErrValidation)
	}
	if _, err := s.GetServerByID(id); err != nil {
		return models.Server{}, err
	}

	_, err := s.db.Exec("UPDATE servers SET name = ?, phone = ?, email = ?, price_per_event = ? WHERE id = ?",
		server.Name, server.Phone, server.Email, server.PricePerEvent, id)
	if err != nil {
		return models.Server{}, err
	}

	updated, err := s.GetServerByID(id)
	if err != nil {
		return models.Server{}, err
	}
	s.broadcastServerUpdate(updated)
	return updated, nil
}

// ToggleAvailability flips whether a server can take new assignments.
func (s *ServerService) ToggleAvailability(id string) (models.Server, error) {
	srv, err := s.GetServerByID(id)
	if err != nil {
		return models.Server{}, err
	}

	_, err = s.db.Exec("UPDATE servers SET available = ? WHERE id = ?", !srv.Available, id)
	if err != nil {
		return models.Server{}, err
	}

	srv.Available = !srv.Available
	s.broadcastServerUpdate(srv)
	return srv, nil
}

// DeleteServer removes a server and, via cascade, its payment history and
// event assignments.
func (s *ServerService) DeleteServer(id string) error {
	srv, err := s.GetServerByID(id)
	if err != nil {
		return err
	}

	_, err = s.db.Exec("DELETE FROM servers WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete server from DB: %w", err)
	}

	s.activity.Record("server.delete", "warn", fmt.Sprintf("Server '%s' was removed from the roster.", srv.Name), nil)
	if s.hub != nil {
		s.hub.Broadcast <- []byte(`{"action": "server_deleted", "payload": {"id": "` + id + `"}}`)
	}
	return nil
}

// RecordPayment applies a partial payment to a server's remaining balance
// and appends the record to its ledger. Calls are serialized per server.
func (s *ServerService) RecordPayment(id string, amount float64, method models.PaymentMethod, note string) (models.Server, models.PaymentRecord, error) {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	srv, err := s.GetServerByID(id)
	if err != nil {
		return models.Server{}, models.PaymentRecord{}, err
	}

	updated, record, err := ledger.ApplyPayment(srv, amount, method, note, time.Now())
	if err != nil {
		return models.Server{}, models.PaymentRecord{}, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Server{}, models.PaymentRecord{}, err
	}
	defer tx.Rollback()

	if _, err = tx.Exec("UPDATE servers SET total_earnings = ? WHERE id = ?", updated.TotalEarnings, id); err != nil {
		return models.Server{}, models.PaymentRecord{}, err
	}
	if _, err = tx.Exec(`
	INSERT INTO payments(id, server_id, amount, remaining, method, note, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.ServerID, record.Amount, record.Remaining, string(record.Method), record.Note, record.CreatedAt); err != nil {
		return models.Server{}, models.PaymentRecord{}, err
	}
	if err = tx.Commit(); err != nil {
		return models.Server{}, models.PaymentRecord{}, err
	}

	s.activity.Record("payment.recorded", "info",
		fmt.Sprintf("Paid %s to '%s', %s remaining.", ledger.FormatCurrency(record.Amount), updated.Name, ledger.FormatCurrency(record.Remaining)),
		&updated.ID)
	s.broadcastServerUpdate(updated)
	log.Info().
		Str("server_id", id).
		Str("amount", ledger.FormatCurrency(record.Amount)).
		Str("remaining", ledger.FormatCurrency(record.Remaining)).
		Msg("Recorded payment")
	return updated, record, nil
}

// GetServersWithOutstandingBalance lists servers that are still owed money.
func (s *ServerService) GetServersWithOutstandingBalance() ([]models.Server, error) {
	rows, err := s.db.Query("SELECT id, name, phone, email, total_events, total_earnings, available, price_per_event, created_at FROM servers WHERE total_earnings > 0 ORDER BY total_earnings DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var servers []models.Server
	for rows.Next() {
		srv, err := scanServer(rows)
		if err != nil {
			return nil, err
		}
		servers = append(servers, srv)
	}
	return servers, rows.Err()
}

// GetDashboardStats aggregates roster-wide figures.
func (s *ServerService) GetDashboardStats() (models.DashboardStats, error) {
	servers, err := s.GetAllServers()
	if err != nil {
		return models.DashboardStats{}, err
	}

	stats := models.DashboardStats{TotalServers: len(servers)}
	for _, srv := range servers {
		if srv.Available {
			stats.AvailableServers++
		}
		stats.TotalEvents += srv.TotalEvents
		stats.OutstandingBalance += srv.TotalEarnings
	}
	return stats, nil
}

// lockFor returns the payment mutex for a server id.
func (s *ServerService) lockFor(id string) *sync.Mutex {
	mu, _ := s.paymentLocks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// paymentsForServer loads a server's ledger in chronological order.
func (s *ServerService) paymentsForServer(id string) ([]models.PaymentRecord, error) {
	rows, err := s.db.Query("SELECT id, server_id, amount, remaining, method, note, created_at FROM payments WHERE server_id = ? ORDER BY created_at ASC, id ASC", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.PaymentRecord
	for rows.Next() {
		var p models.PaymentRecord
		var note sql.NullString
		var method string
		if err := rows.Scan(&p.ID, &p.ServerID, &p.Amount, &p.Remaining, &method, &note, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Method = models.PaymentMethod(method)
		p.Note = note.String
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// scanServer scans a roster row from either a *sql.Row or *sql.Rows.
func scanServer(scanner interface{ Scan(...interface{}) error }) (models.Server, error) {
	var srv models.Server
	var phone, email sql.NullString
	err := scanner.Scan(&srv.ID, &srv.Name, &phone, &email, &srv.TotalEvents, &srv.TotalEarnings, &srv.Available, &srv.PricePerEvent, &srv.CreatedAt)
	if err != nil {
		return models.Server{}, err
	}
	srv.Phone = phone.String
	srv.Email = email.String
	return srv, nil
}

// broadcastServerUpdate sends the server's state to all dashboard clients.
func (s *ServerService) broadcastServerUpdate(server models.Server) {
	if s.hub == nil {
		return
	}
	msg := websocket.Message{
		Action:  "server_update",
		Payload: server,
	}
	jsonMsg, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Msg("Error marshalling server update for broadcast")
		return
	}
	s.hub.Broadcast <- jsonMsg
	s.hub.BroadcastTo(server.ID, jsonMsg)
}
