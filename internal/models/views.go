package models

import "time"

// PetSummary is the pet slice shown alongside a booking
type PetSummary struct {
	ID         string `db:"id" json:"id"`
	PetName    string `db:"pet_name" json:"petName"`
	AnimalType string `db:"animal_type" json:"animalType"`
	Breed      string `db:"breed" json:"breed"`
	Status     string `db:"status" json:"status"`
}

// BuyerSummary is the buyer slice shown alongside a booking
type BuyerSummary struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Phone string `db:"phone" json:"phone,omitempty"`
}

// BookingDetail is a booking joined with its pet and buyer for display
type BookingDetail struct {
	Booking
	Pet   PetSummary   `db:"pet" json:"pet"`
	Buyer BuyerSummary `db:"buyer" json:"buyer"`
}

// Booker is the resolved requester of an appointment: the buyer or the
// seller, whichever side the record references
type Booker struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ServiceInfo is the service slice shown alongside an appointment
type ServiceInfo struct {
	ID          string `json:"id"`
	ServiceName string `json:"serviceName"`
	Price       int64  `json:"price"`
}

// VetSummary is the vet slice shown alongside an appointment
type VetSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AppointmentDetail is a service booking joined with its booker, vet and
// service info for display
type AppointmentDetail struct {
	ID              string      `json:"id"`
	VetID           string      `json:"vetId"`
	AppointmentTime time.Time   `json:"appointmentTime"`
	Status          string      `json:"status"`
	DeclineReason   string      `json:"declineReason,omitempty"`
	Booker          Booker      `json:"booker"`
	ServiceInfo     ServiceInfo `json:"serviceInfo"`
	Vet             VetSummary  `json:"vet"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// Booker roles
const (
	BookerRoleBuyer  = "buyer"
	BookerRoleSeller = "seller"
)
