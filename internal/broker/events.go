package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"petmarket-service/internal/models"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// EventPublisher builds and publishes booking lifecycle events
type EventPublisher struct {
	sink MessageSink
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(sink MessageSink) *EventPublisher {
	return &EventPublisher{sink: sink}
}

// PublishBookingEvent publishes a pet booking lifecycle event, keyed by
// booking so transitions for one booking stay ordered
func (ep *EventPublisher) PublishBookingEvent(ctx context.Context, eventType string, booking *models.Booking) error {
	event := &models.BookingEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: eventType,
			Timestamp: time.Now(),
		},
		BookingID: booking.ID,
		PetID:     booking.PetID,
		BuyerID:   booking.BuyerID,
		Status:    booking.Status,
	}
	return ep.sink.PublishEvent(ctx, "booking-"+booking.ID, event)
}

// PublishAppointmentEvent publishes a service booking lifecycle event
func (ep *EventPublisher) PublishAppointmentEvent(ctx context.Context, eventType string, sb *models.ServiceBooking) error {
	requesterID, requesterRole := resolveRequester(sb)
	event := &models.AppointmentEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: eventType,
			Timestamp: time.Now(),
		},
		AppointmentID:   sb.ID,
		VetID:           sb.VetID,
		ServiceID:       sb.ServiceID,
		RequesterID:     requesterID,
		RequesterRole:   requesterRole,
		AppointmentTime: sb.AppointmentTime,
		Status:          sb.Status,
		DeclineReason:   sb.DeclineReason,
	}
	return ep.sink.PublishEvent(ctx, "appointment-"+sb.ID, event)
}

func resolveRequester(sb *models.ServiceBooking) (id, role string) {
	if sb.BuyerID != nil {
		return *sb.BuyerID, models.BookerRoleBuyer
	}
	if sb.SellerID != nil {
		return *sb.SellerID, models.BookerRoleSeller
	}
	return "", ""
}

// EventHandler routes consumed messages to per-type callbacks
type EventHandler struct {
	onBooking     func(context.Context, *models.BookingEvent) error
	onAppointment func(context.Context, *models.AppointmentEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnBookingEvent registers a handler for pet booking events
func (eh *EventHandler) OnBookingEvent(handler func(context.Context, *models.BookingEvent) error) {
	eh.onBooking = handler
}

// OnAppointmentEvent registers a handler for appointment events
func (eh *EventHandler) OnAppointmentEvent(handler func(context.Context, *models.AppointmentEvent) error) {
	eh.onAppointment = handler
}

// HandleMessage routes a message to the appropriate handler
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var base models.BaseEvent
	if err := json.Unmarshal(msg.Value, &base); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch base.EventType {
	case models.EventTypeBookingRequested, models.EventTypeBookingAccepted,
		models.EventTypeBookingDeclined, models.EventTypeBookingCompleted:
		if eh.onBooking != nil {
			var event models.BookingEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal booking event: %w", err)
			}
			return eh.onBooking(ctx, &event)
		}

	case models.EventTypeAppointmentRequested, models.EventTypeAppointmentAccepted,
		models.EventTypeAppointmentDeclined, models.EventTypeAppointmentCancelled:
		if eh.onAppointment != nil {
			var event models.AppointmentEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal appointment event: %w", err)
			}
			return eh.onAppointment(ctx, &event)
		}
	}

	return nil
}
