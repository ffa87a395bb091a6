package store

import (
	"context"
	"database/sql"
	"fmt"

	"petmarket-service/internal/apperr"
	"petmarket-service/internal/models"

	"github.com/lib/pq"
)

// CreatePet inserts a new pet listing with status available
func (s *Store) CreatePet(ctx context.Context, pet *models.Pet) error {
	query := `
		INSERT INTO pets (id, seller_id, animal_type, breed, pet_name, pet_age, descriptions, image_urls, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	row := s.db.QueryRowxContext(ctx, query,
		pet.ID, pet.SellerID, pet.AnimalType, pet.Breed, pet.PetName,
		pet.PetAge, pet.Descriptions, pq.Array(pet.ImageURLs), pet.Status)
	return row.Scan(&pet.CreatedAt, &pet.UpdatedAt)
}

// GetPetByID retrieves a pet by ID
func (s *Store) GetPetByID(ctx context.Context, id string) (*models.Pet, error) {
	var pet models.Pet
	err := s.db.GetContext(ctx, &pet, "SELECT * FROM pets WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("pet %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &pet, nil
}

// ListAvailablePets retrieves all pets open for booking, newest first
func (s *Store) ListAvailablePets(ctx context.Context) ([]models.Pet, error) {
	pets := []models.Pet{}
	err := s.db.SelectContext(ctx, &pets,
		"SELECT * FROM pets WHERE status = $1 ORDER BY created_at DESC",
		models.PetStatusAvailable)
	return pets, err
}

// ListPetsBySeller retrieves all pets listed by a seller
func (s *Store) ListPetsBySeller(ctx context.Context, sellerID string) ([]models.Pet, error) {
	pets := []models.Pet{}
	err := s.db.SelectContext(ctx, &pets,
		"SELECT * FROM pets WHERE seller_id = $1 ORDER BY created_at DESC", sellerID)
	return pets, err
}
