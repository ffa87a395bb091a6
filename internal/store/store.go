package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"petmarket-service/internal/apperr"
	"petmarket-service/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Store struct {
	db *sqlx.DB
}

// NewStore connects to Postgres and returns a store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// NewStoreWithDB wraps an existing connection, used by tests
func NewStoreWithDB(db *sql.DB) *Store {
	return &Store{db: sqlx.NewDb(db, "postgres")}
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetBuyerByID retrieves a buyer by ID
func (s *Store) GetBuyerByID(ctx context.Context, id string) (*models.Buyer, error) {
	var buyer models.Buyer
	err := s.db.GetContext(ctx, &buyer, "SELECT * FROM buyers WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("buyer %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &buyer, nil
}

// GetSellerByID retrieves a seller by ID
func (s *Store) GetSellerByID(ctx context.Context, id string) (*models.Seller, error) {
	var seller models.Seller
	err := s.db.GetContext(ctx, &seller, "SELECT * FROM sellers WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("seller %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &seller, nil
}

// GetVetByID retrieves a vet by ID
func (s *Store) GetVetByID(ctx context.Context, id string) (*models.Vet, error) {
	var vet models.Vet
	err := s.db.GetContext(ctx, &vet, "SELECT * FROM vets WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("vet %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &vet, nil
}

// GetVetServiceByID retrieves a vet service by ID
func (s *Store) GetVetServiceByID(ctx context.Context, id string) (*models.VetService, error) {
	var svc models.VetService
	err := s.db.GetContext(ctx, &svc, "SELECT * FROM vet_services WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("vet service %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

// ListVetServices retrieves all services offered by a vet
func (s *Store) ListVetServices(ctx context.Context, vetID string) ([]models.VetService, error) {
	services := []models.VetService{}
	err := s.db.SelectContext(ctx, &services,
		"SELECT * FROM vet_services WHERE vet_id = $1 ORDER BY service_name", vetID)
	return services, err
}

// IsEventProcessed checks if an event has been processed
func (s *Store) IsEventProcessed(ctx context.Context, eventID string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM processed_events WHERE event_id = $1)", eventID)
	return exists, err
}

// MarkEventProcessed marks an event as processed
func (s *Store) MarkEventProcessed(ctx context.Context, eventID, eventType string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO processed_events (event_id, event_type) VALUES ($1, $2) ON CONFLICT (event_id) DO NOTHING",
		eventID, eventType)
	return err
}
