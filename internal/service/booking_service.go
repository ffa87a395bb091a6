package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"petmarket-service/internal/apperr"
	"petmarket-service/internal/models"
	"petmarket-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService drives the pet booking lifecycle: create, accept, decline,
// complete, with the pet status mirrored on every transition
type BookingService struct {
	store  BookingStore
	cache  PetListingCache
	events EventPublisher
	logger *zap.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(store BookingStore, cache PetListingCache, events EventPublisher) *BookingService {
	return &BookingService{
		store:  store,
		cache:  cache,
		events: events,
		logger: util.GetLogger(),
	}
}

// CreateBookingRequest represents a buyer's adoption request
type CreateBookingRequest struct {
	PetID   string `json:"petId" binding:"required"`
	BuyerID string `json:"buyerId" binding:"required"`
}

var bookingEventTypes = map[string]string{
	models.BookingStatusPending:   models.EventTypeBookingRequested,
	models.BookingStatusAccepted:  models.EventTypeBookingAccepted,
	models.BookingStatusDeclined:  models.EventTypeBookingDeclined,
	models.BookingStatusCompleted: models.EventTypeBookingCompleted,
}

// CreateBooking reserves an available pet for a buyer. Fails with ErrConflict
// when the pet already has an active booking or is not available.
func (s *BookingService) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*models.Booking, error) {
	ctx, span := util.StartSpan(ctx, "BookingService.CreateBooking")
	defer span.End()

	if strings.TrimSpace(req.PetID) == "" || strings.TrimSpace(req.BuyerID) == "" {
		return nil, fmt.Errorf("petId and buyerId are required: %w", apperr.ErrValidation)
	}

	if _, err := s.store.GetBuyerByID(ctx, req.BuyerID); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:      uuid.New().String(),
		PetID:   req.PetID,
		BuyerID: req.BuyerID,
		Status:  models.BookingStatusPending,
	}

	if err := s.store.CreateBookingTx(ctx, booking); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			util.BookingsConflictTotal.Inc()
		}
		return nil, err
	}

	util.BookingsCreatedTotal.Inc()
	s.logger.Info("Booking created",
		zap.String("booking_id", booking.ID),
		zap.String("pet_id", booking.PetID))

	s.invalidatePetCache(ctx)
	s.publish(ctx, booking)

	return booking, nil
}

// UpdateBookingStatus moves a booking to accepted, declined or completed.
// The pet is released back to the market on decline and marked sold on accept.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, bookingID, status string) (*models.Booking, error) {
	ctx, span := util.StartSpan(ctx, "BookingService.UpdateBookingStatus")
	defer span.End()

	switch status {
	case models.BookingStatusAccepted, models.BookingStatusDeclined, models.BookingStatusCompleted:
	default:
		return nil, fmt.Errorf("invalid booking status %q: %w", status, apperr.ErrValidation)
	}

	booking, err := s.store.TransitionBookingTx(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}

	util.BookingTransitionsTotal.WithLabelValues(status).Inc()
	s.logger.Info("Booking transitioned",
		zap.String("booking_id", booking.ID),
		zap.String("status", status))

	s.invalidatePetCache(ctx)
	s.publish(ctx, booking)

	return booking, nil
}

// ListSellerBookings returns all bookings against a seller's pets, joined
// with pet and buyer summaries
func (s *BookingService) ListSellerBookings(ctx context.Context, sellerID string) ([]models.BookingDetail, error) {
	ctx, span := util.StartSpan(ctx, "BookingService.ListSellerBookings")
	defer span.End()

	return s.store.ListBookingsBySeller(ctx, sellerID)
}

func (s *BookingService) invalidatePetCache(ctx context.Context) {
	if err := s.cache.InvalidateAvailablePets(ctx); err != nil {
		s.logger.Warn("Failed to invalidate pet listing cache", zap.Error(err))
	}
}

// publish emits the lifecycle event for the booking's current status.
// Publish failures are logged, never surfaced to the caller.
func (s *BookingService) publish(ctx context.Context, booking *models.Booking) {
	eventType, ok := bookingEventTypes[booking.Status]
	if !ok {
		return
	}
	if err := s.events.PublishBookingEvent(ctx, eventType, booking); err != nil {
		s.logger.Error("Failed to publish booking event",
			zap.String("booking_id", booking.ID),
			zap.String("event_type", eventType),
			zap.Error(err))
	}
}
