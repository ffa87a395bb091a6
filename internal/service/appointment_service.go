package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"petmarket-service/internal/apperr"
	"petmarket-service/internal/models"
	"petmarket-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AppointmentService drives the vet service booking lifecycle. A slot hold in
// Redis fails fast on contested time slots; the store transaction is the
// authority for the no-double-booking invariant.
type AppointmentService struct {
	store  AppointmentStore
	slots  SlotHolder
	events EventPublisher
	logger *zap.Logger
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(store AppointmentStore, slots SlotHolder, events EventPublisher) *AppointmentService {
	return &AppointmentService{
		store:  store,
		slots:  slots,
		events: events,
		logger: util.GetLogger(),
	}
}

// CreateAppointmentRequest represents a vet appointment request. Exactly one
// of BuyerID/SellerID identifies the requester.
type CreateAppointmentRequest struct {
	BuyerID         *string   `json:"buyerId,omitempty"`
	SellerID        *string   `json:"sellerId,omitempty"`
	VetID           string    `json:"vetId" binding:"required"`
	ServiceID       string    `json:"serviceId" binding:"required"`
	AppointmentTime time.Time `json:"appointmentTime" binding:"required"`
}

// UpdateAppointmentRequest carries a status change and an optional decline reason
type UpdateAppointmentRequest struct {
	Status        string `json:"status" binding:"required"`
	DeclineReason string `json:"declineReason,omitempty"`
}

// CreateAppointment books a vet time slot. Fails with ErrValidation on
// missing or ambiguous requester fields or a service the vet does not offer,
// ErrNotFound on an unknown vet or service, and ErrConflict when the slot is
// taken by an active booking.
func (s *AppointmentService) CreateAppointment(ctx context.Context, req *CreateAppointmentRequest) (*models.ServiceBooking, error) {
	ctx, span := util.StartSpan(ctx, "AppointmentService.CreateAppointment")
	defer span.End()

	if err := validateRequester(req.BuyerID, req.SellerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.VetID) == "" || strings.TrimSpace(req.ServiceID) == "" || req.AppointmentTime.IsZero() {
		return nil, fmt.Errorf("vetId, serviceId and appointmentTime are required: %w", apperr.ErrValidation)
	}

	if _, err := s.store.GetVetByID(ctx, req.VetID); err != nil {
		return nil, err
	}
	svc, err := s.store.GetVetServiceByID(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc.VetID != req.VetID {
		return nil, fmt.Errorf("service %s is not offered by vet %s: %w",
			req.ServiceID, req.VetID, apperr.ErrValidation)
	}

	taken, err := s.store.HasAppointmentConflict(ctx, req.VetID, req.AppointmentTime)
	if err != nil {
		return nil, err
	}
	if taken {
		util.AppointmentsConflictTotal.Inc()
		return nil, fmt.Errorf("vet %s already has an active booking at %s: %w",
			req.VetID, req.AppointmentTime.Format(time.RFC3339), apperr.ErrConflict)
	}

	held, err := s.slots.HoldSlot(ctx, req.VetID, req.AppointmentTime)
	if err != nil {
		// Redis down must not block bookings; the store still enforces the slot.
		s.logger.Warn("Slot hold unavailable, relying on store check", zap.Error(err))
	} else if !held {
		util.AppointmentsConflictTotal.Inc()
		return nil, fmt.Errorf("slot is being booked by another request: %w", apperr.ErrConflict)
	}

	sb := &models.ServiceBooking{
		ID:              uuid.New().String(),
		BuyerID:         req.BuyerID,
		SellerID:        req.SellerID,
		VetID:           req.VetID,
		ServiceID:       req.ServiceID,
		AppointmentTime: req.AppointmentTime,
		Status:          models.AppointmentStatusPending,
	}

	if err := s.store.CreateServiceBookingTx(ctx, sb); err != nil {
		s.releaseSlot(ctx, req.VetID, req.AppointmentTime)
		if errors.Is(err, apperr.ErrConflict) {
			util.AppointmentsConflictTotal.Inc()
		}
		return nil, err
	}

	util.AppointmentsCreatedTotal.Inc()
	s.logger.Info("Appointment created",
		zap.String("appointment_id", sb.ID),
		zap.String("vet_id", sb.VetID),
		zap.Time("appointment_time", sb.AppointmentTime))

	s.publish(ctx, models.EventTypeAppointmentRequested, sb)

	return sb, nil
}

// UpdateAppointmentStatus sets the appointment status. Declining stores the
// given reason or the default placeholder and frees the slot hold; any other
// status clears the reason, so a re-activated booking carries no stale
// decline reason.
func (s *AppointmentService) UpdateAppointmentStatus(ctx context.Context, id string, req *UpdateAppointmentRequest) (*models.ServiceBooking, error) {
	ctx, span := util.StartSpan(ctx, "AppointmentService.UpdateAppointmentStatus")
	defer span.End()

	if !models.ValidAppointmentStatus(req.Status) {
		return nil, fmt.Errorf("invalid appointment status %q: %w", req.Status, apperr.ErrValidation)
	}

	reason := ""
	if req.Status == models.AppointmentStatusDeclined {
		reason = strings.TrimSpace(req.DeclineReason)
		if reason == "" {
			reason = models.DefaultDeclineReason
		}
	}

	sb, err := s.store.UpdateServiceBookingStatus(ctx, id, req.Status, reason)
	if err != nil {
		return nil, err
	}

	util.AppointmentTransitionsTotal.WithLabelValues(req.Status).Inc()
	s.logger.Info("Appointment transitioned",
		zap.String("appointment_id", sb.ID),
		zap.String("status", req.Status))

	switch req.Status {
	case models.AppointmentStatusAccepted:
		s.publish(ctx, models.EventTypeAppointmentAccepted, sb)
	case models.AppointmentStatusDeclined:
		// a declined booking no longer occupies the slot
		s.releaseSlot(ctx, sb.VetID, sb.AppointmentTime)
		s.publish(ctx, models.EventTypeAppointmentDeclined, sb)
	}

	return sb, nil
}

// DeleteAppointment removes a declined appointment and frees its slot hold.
// Any non-declined status fails with ErrForbidden and leaves the record
// untouched.
func (s *AppointmentService) DeleteAppointment(ctx context.Context, id string) error {
	ctx, span := util.StartSpan(ctx, "AppointmentService.DeleteAppointment")
	defer span.End()

	sb, err := s.store.GetServiceBookingByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteServiceBookingTx(ctx, id); err != nil {
		return err
	}

	util.AppointmentsDeletedTotal.Inc()
	s.logger.Info("Appointment deleted", zap.String("appointment_id", id))

	s.releaseSlot(ctx, sb.VetID, sb.AppointmentTime)
	s.publish(ctx, models.EventTypeAppointmentCancelled, sb)

	return nil
}

// ListVetAppointments returns a vet's appointments with resolved bookers,
// soonest first
func (s *AppointmentService) ListVetAppointments(ctx context.Context, vetID string) ([]models.AppointmentDetail, error) {
	ctx, span := util.StartSpan(ctx, "AppointmentService.ListVetAppointments")
	defer span.End()

	return s.store.ListAppointmentsByVet(ctx, vetID)
}

// ListBuyerAppointments returns a buyer's appointments, soonest first
func (s *AppointmentService) ListBuyerAppointments(ctx context.Context, buyerID string) ([]models.AppointmentDetail, error) {
	ctx, span := util.StartSpan(ctx, "AppointmentService.ListBuyerAppointments")
	defer span.End()

	return s.store.ListAppointmentsByBuyer(ctx, buyerID)
}

// ListSellerAppointments returns a seller's appointments, soonest first
func (s *AppointmentService) ListSellerAppointments(ctx context.Context, sellerID string) ([]models.AppointmentDetail, error) {
	ctx, span := util.StartSpan(ctx, "AppointmentService.ListSellerAppointments")
	defer span.End()

	return s.store.ListAppointmentsBySeller(ctx, sellerID)
}

func validateRequester(buyerID, sellerID *string) error {
	hasBuyer := buyerID != nil && strings.TrimSpace(*buyerID) != ""
	hasSeller := sellerID != nil && strings.TrimSpace(*sellerID) != ""

	if hasBuyer == hasSeller {
		return fmt.Errorf("exactly one of buyerId or sellerId is required: %w", apperr.ErrValidation)
	}
	return nil
}

func (s *AppointmentService) releaseSlot(ctx context.Context, vetID string, appointmentTime time.Time) {
	if err := s.slots.ReleaseSlot(ctx, vetID, appointmentTime); err != nil {
		s.logger.Warn("Failed to release slot hold",
			zap.String("vet_id", vetID),
			zap.Error(err))
	}
}

func (s *AppointmentService) publish(ctx context.Context, eventType string, sb *models.ServiceBooking) {
	if err := s.events.PublishAppointmentEvent(ctx, eventType, sb); err != nil {
		s.logger.Error("Failed to publish appointment event",
			zap.String("appointment_id", sb.ID),
			zap.String("event_type", eventType),
			zap.Error(err))
	}
}
