package service

import (
	"context"
	"time"

	"petmarket-service/internal/models"
)

// BookingStore is the persistence surface the pet booking controller needs
type BookingStore interface {
	GetBuyerByID(ctx context.Context, id string) (*models.Buyer, error)
	CreateBookingTx(ctx context.Context, booking *models.Booking) error
	TransitionBookingTx(ctx context.Context, bookingID, toStatus string) (*models.Booking, error)
	ListBookingsBySeller(ctx context.Context, sellerID string) ([]models.BookingDetail, error)
}

// AppointmentStore is the persistence surface the appointment controller needs
type AppointmentStore interface {
	GetVetByID(ctx context.Context, id string) (*models.Vet, error)
	GetVetServiceByID(ctx context.Context, id string) (*models.VetService, error)
	HasAppointmentConflict(ctx context.Context, vetID string, appointmentTime time.Time) (bool, error)
	CreateServiceBookingTx(ctx context.Context, sb *models.ServiceBooking) error
	GetServiceBookingByID(ctx context.Context, id string) (*models.ServiceBooking, error)
	UpdateServiceBookingStatus(ctx context.Context, id, status, declineReason string) (*models.ServiceBooking, error)
	DeleteServiceBookingTx(ctx context.Context, id string) error
	ListAppointmentsByVet(ctx context.Context, vetID string) ([]models.AppointmentDetail, error)
	ListAppointmentsByBuyer(ctx context.Context, buyerID string) ([]models.AppointmentDetail, error)
	ListAppointmentsBySeller(ctx context.Context, sellerID string) ([]models.AppointmentDetail, error)
}

// CatalogStore is the persistence surface the catalog façade needs
type CatalogStore interface {
	GetSellerByID(ctx context.Context, id string) (*models.Seller, error)
	CreatePet(ctx context.Context, pet *models.Pet) error
	GetPetByID(ctx context.Context, id string) (*models.Pet, error)
	ListAvailablePets(ctx context.Context) ([]models.Pet, error)
	ListPetsBySeller(ctx context.Context, sellerID string) ([]models.Pet, error)
	ListVetServices(ctx context.Context, vetID string) ([]models.VetService, error)
}

// PetListingCache caches the available-pet listing
type PetListingCache interface {
	GetAvailablePets(ctx context.Context) ([]models.Pet, bool, error)
	SetAvailablePets(ctx context.Context, pets []models.Pet) error
	InvalidateAvailablePets(ctx context.Context) error
}

// SlotHolder takes short-lived holds on vet time slots
type SlotHolder interface {
	HoldSlot(ctx context.Context, vetID string, appointmentTime time.Time) (bool, error)
	ReleaseSlot(ctx context.Context, vetID string, appointmentTime time.Time) error
}

// EventPublisher publishes lifecycle events. Satisfied by broker.EventPublisher.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, eventType string, booking *models.Booking) error
	PublishAppointmentEvent(ctx context.Context, eventType string, sb *models.ServiceBooking) error
}
