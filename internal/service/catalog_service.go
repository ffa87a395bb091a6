package service

import (
	"context"
	"fmt"
	"strings"

	"petmarket-service/internal/apperr"
	"petmarket-service/internal/models"
	"petmarket-service/internal/util"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// CatalogService serves the read-mostly marketplace catalog: pet listings and
// vet service offerings. No lifecycle state lives here; pet status is owned
// by the booking controller.
type CatalogService struct {
	store  CatalogStore
	cache  PetListingCache
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store CatalogStore, cache PetListingCache) *CatalogService {
	return &CatalogService{
		store:  store,
		cache:  cache,
		logger: util.GetLogger(),
	}
}

// CreatePetRequest represents a seller's new pet listing
type CreatePetRequest struct {
	SellerID     string   `json:"sellerId" binding:"required"`
	AnimalType   string   `json:"animalType" binding:"required"`
	Breed        string   `json:"breed"`
	PetName      string   `json:"petName" binding:"required"`
	PetAge       int      `json:"petAge"`
	Descriptions string   `json:"descriptions"`
	ImageURLs    []string `json:"imageUrls"`
}

// CreatePet lists a pet for adoption with status available
func (s *CatalogService) CreatePet(ctx context.Context, req *CreatePetRequest) (*models.Pet, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.CreatePet")
	defer span.End()

	if strings.TrimSpace(req.SellerID) == "" || strings.TrimSpace(req.PetName) == "" ||
		strings.TrimSpace(req.AnimalType) == "" {
		return nil, fmt.Errorf("sellerId, animalType and petName are required: %w", apperr.ErrValidation)
	}

	if _, err := s.store.GetSellerByID(ctx, req.SellerID); err != nil {
		return nil, err
	}

	pet := &models.Pet{
		ID:           uuid.New().String(),
		SellerID:     req.SellerID,
		AnimalType:   req.AnimalType,
		Breed:        req.Breed,
		PetName:      req.PetName,
		PetAge:       req.PetAge,
		Descriptions: req.Descriptions,
		ImageURLs:    pq.StringArray(req.ImageURLs),
		Status:       models.PetStatusAvailable,
	}

	if err := s.store.CreatePet(ctx, pet); err != nil {
		return nil, fmt.Errorf("failed to create pet listing: %w", err)
	}

	s.logger.Info("Pet listed",
		zap.String("pet_id", pet.ID),
		zap.String("seller_id", pet.SellerID))

	if err := s.cache.InvalidateAvailablePets(ctx); err != nil {
		s.logger.Warn("Failed to invalidate pet listing cache", zap.Error(err))
	}

	return pet, nil
}

// GetPet retrieves a single pet listing
func (s *CatalogService) GetPet(ctx context.Context, id string) (*models.Pet, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.GetPet")
	defer span.End()

	return s.store.GetPetByID(ctx, id)
}

// ListAvailablePets returns all pets open for booking, served from the
// Redis cache when warm
func (s *CatalogService) ListAvailablePets(ctx context.Context) ([]models.Pet, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListAvailablePets")
	defer span.End()

	pets, hit, err := s.cache.GetAvailablePets(ctx)
	if err != nil {
		s.logger.Warn("Pet listing cache read failed", zap.Error(err))
	}
	if hit {
		util.PetCacheHitsTotal.WithLabelValues("hit").Inc()
		return pets, nil
	}
	util.PetCacheHitsTotal.WithLabelValues("miss").Inc()

	pets, err = s.store.ListAvailablePets(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetAvailablePets(ctx, pets); err != nil {
		s.logger.Warn("Failed to write pet listing cache", zap.Error(err))
	}

	return pets, nil
}

// ListSellerPets returns every pet a seller has listed, regardless of status
func (s *CatalogService) ListSellerPets(ctx context.Context, sellerID string) ([]models.Pet, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListSellerPets")
	defer span.End()

	return s.store.ListPetsBySeller(ctx, sellerID)
}

// ListVetServices returns a vet's service offerings
func (s *CatalogService) ListVetServices(ctx context.Context, vetID string) ([]models.VetService, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListVetServices")
	defer span.End()

	return s.store.ListVetServices(ctx, vetID)
}
