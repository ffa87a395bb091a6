package models

import "time"

// Event types
const (
	EventTypeBookingRequested     = "BOOKING_REQUESTED"
	EventTypeBookingAccepted      = "BOOKING_ACCEPTED"
	EventTypeBookingDeclined      = "BOOKING_DECLINED"
	EventTypeBookingCompleted     = "BOOKING_COMPLETED"
	EventTypeAppointmentRequested = "APPOINTMENT_REQUESTED"
	EventTypeAppointmentAccepted  = "APPOINTMENT_ACCEPTED"
	EventTypeAppointmentDeclined  = "APPOINTMENT_DECLINED"
	EventTypeAppointmentCancelled = "APPOINTMENT_CANCELLED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// BookingEvent published on pet booking lifecycle transitions
type BookingEvent struct {
	BaseEvent
	BookingID string `json:"booking_id"`
	PetID     string `json:"pet_id"`
	BuyerID   string `json:"buyer_id"`
	Status    string `json:"status"`
}

// AppointmentEvent published on service booking lifecycle transitions
type AppointmentEvent struct {
	BaseEvent
	AppointmentID   string    `json:"appointment_id"`
	VetID           string    `json:"vet_id"`
	ServiceID       string    `json:"service_id"`
	RequesterID     string    `json:"requester_id"`
	RequesterRole   string    `json:"requester_role"`
	AppointmentTime time.Time `json:"appointment_time"`
	Status          string    `json:"status"`
	DeclineReason   string    `json:"decline_reason,omitempty"`
}
