package models

import (
	"time"

	"github.com/lib/pq"
)

// Buyer is a marketplace customer who adopts pets and books vet services
type Buyer struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Seller lists pets for adoption
type Seller struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Vet is a veterinarian offering services for appointment booking
type Vet struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// VetService is a named service a vet offers (checkup, vaccination, ...)
type VetService struct {
	ID          string    `db:"id" json:"id"`
	VetID       string    `db:"vet_id" json:"vetId"`
	ServiceName string    `db:"service_name" json:"serviceName"`
	Price       int64     `db:"price" json:"price"`
	Description string    `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// Pet is a listing owned by a seller
type Pet struct {
	ID           string         `db:"id" json:"id"`
	SellerID     string         `db:"seller_id" json:"sellerId"`
	AnimalType   string         `db:"animal_type" json:"animalType"`
	Breed        string         `db:"breed" json:"breed"`
	PetName      string         `db:"pet_name" json:"petName"`
	PetAge       int            `db:"pet_age" json:"petAge"`
	Descriptions string         `db:"descriptions" json:"descriptions,omitempty"`
	ImageURLs    pq.StringArray `db:"image_urls" json:"imageUrls"`
	Status       string         `db:"status" json:"status"`
	CreatedAt    time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updatedAt"`
}

// Booking is a buyer's adoption request for a pet
type Booking struct {
	ID          string    `db:"id" json:"id"`
	PetID       string    `db:"pet_id" json:"petId"`
	BuyerID     string    `db:"buyer_id" json:"buyerId"`
	Status      string    `db:"status" json:"status"`
	RequestedAt time.Time `db:"requested_at" json:"requestedAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// ServiceBooking is a vet appointment requested by a buyer or a seller.
// Exactly one of BuyerID/SellerID is set.
type ServiceBooking struct {
	ID              string    `db:"id" json:"id"`
	BuyerID         *string   `db:"buyer_id" json:"buyerId,omitempty"`
	SellerID        *string   `db:"seller_id" json:"sellerId,omitempty"`
	VetID           string    `db:"vet_id" json:"vetId"`
	ServiceID       string    `db:"service_id" json:"serviceId"`
	AppointmentTime time.Time `db:"appointment_time" json:"appointmentTime"`
	Status          string    `db:"status" json:"status"`
	DeclineReason   string    `db:"decline_reason" json:"declineReason,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// Pet statuses
const (
	PetStatusAvailable = "available"
	PetStatusPending   = "pending"
	PetStatusSold      = "sold"
)

// Booking statuses
const (
	BookingStatusPending   = "pending"
	BookingStatusAccepted  = "accepted"
	BookingStatusDeclined  = "declined"
	BookingStatusCompleted = "completed"
)

// ServiceBooking statuses
const (
	AppointmentStatusPending  = "pending"
	AppointmentStatusAccepted = "accepted"
	AppointmentStatusDeclined = "declined"
)

// DefaultDeclineReason is stored when a vet declines without giving a reason
const DefaultDeclineReason = "No reason provided"

// bookingTransitions maps a target booking status to the statuses it may be
// reached from. Create is the only way into pending.
var bookingTransitions = map[string][]string{
	BookingStatusAccepted:  {BookingStatusPending},
	BookingStatusDeclined:  {BookingStatusPending},
	BookingStatusCompleted: {BookingStatusAccepted},
}

// CanTransitionBooking reports whether a booking may move from one status to another
func CanTransitionBooking(from, to string) bool {
	for _, allowed := range bookingTransitions[to] {
		if allowed == from {
			return true
		}
	}
	return false
}

// PetStatusFor returns the pet status mirrored by a booking status
func PetStatusFor(bookingStatus string) string {
	switch bookingStatus {
	case BookingStatusAccepted, BookingStatusCompleted:
		return PetStatusSold
	case BookingStatusDeclined:
		return PetStatusAvailable
	default:
		return PetStatusPending
	}
}

// ValidAppointmentStatus reports whether s is a known service booking status
func ValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusAccepted, AppointmentStatusDeclined:
		return true
	}
	return false
}

// IsActiveStatus reports whether a booking in status s still occupies its
// pet or time slot (pending or accepted, not yet terminal)
func IsActiveStatus(s string) bool {
	return s == BookingStatusPending || s == BookingStatusAccepted
}

// ProcessedEvent for consumer idempotency
type ProcessedEvent struct {
	EventID     string    `db:"event_id"`
	EventType   string    `db:"event_type"`
	ProcessedAt time.Time `db:"processed_at"`
}
