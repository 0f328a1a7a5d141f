package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hazemadel/staffdeck-be/internal/ledger"
	"github.com/hazemadel/staffdeck-be/internal/models"
)

// CatererServiceProvider defines the interface for caterer bookkeeping.
// Caterers are tracked for reporting only.
type CatererServiceProvider interface {
	GetAllCaterers() ([]models.Caterer, error)
	CreateCaterer(caterer models.Caterer) (models.Caterer, error)
	DeleteCaterer(id string) error
}

// CatererService provides CRUD over the third-party caterer list.
type CatererService struct {
	db *sql.DB
}

// NewCatererService creates a new CatererService.
func NewCatererService(db *sql.DB) *CatererService {
	return &CatererService{db: db}
}

// GetAllCaterers lists all known caterers.
func (s *CatererService) GetAllCaterers() ([]models.Caterer, error) {
	rows, err := s.db.Query("SELECT id, name, phone, specialty, created_at FROM caterers ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var caterers []models.Caterer
	for rows.Next() {
		var c models.Caterer
		var phone, specialty sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &phone, &specialty, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Phone = phone.String
		c.Specialty = specialty.String
		caterers = append(caterers, c)
	}
	return caterers, rows.Err()
}

// CreateCaterer adds a new caterer.
func (s *CatererService) CreateCaterer(caterer models.Caterer) (models.Caterer, error) {
	if caterer.Name == "" {
		return models.Caterer{}, fmt.Errorf("caterer name is required: %w", ledger.ErrValidation)
	}

	caterer.ID = uuid.New().String()
	caterer.CreatedAt = time.Now()

	_, err := s.db.Exec("INSERT INTO caterers(id, name, phone, specialty, created_at) VALUES(?, ?, ?, ?, ?)",
		caterer.ID, caterer.Name, caterer.Phone, caterer.Specialty, caterer.CreatedAt)
	if err != nil {
		return models.Caterer{}, err
	}
	return caterer, nil
}

// DeleteCaterer removes a caterer from the list.
func (s *CatererService) DeleteCaterer(id string) error {
	res, err := s.db.Exec("DELETE FROM caterers WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("caterer with id %s: %w", id, ledger.ErrNotFound)
	}
	return nil
}
