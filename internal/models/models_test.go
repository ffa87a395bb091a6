package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionBooking(t *testing.T) {
	cases := []struct {
		from, to string
		allowed  bool
	}{
		{BookingStatusPending, BookingStatusAccepted, true},
		{BookingStatusPending, BookingStatusDeclined, true},
		{BookingStatusAccepted, BookingStatusCompleted, true},
		{BookingStatusPending, BookingStatusCompleted, false},
		{BookingStatusAccepted, BookingStatusDeclined, false},
		{BookingStatusDeclined, BookingStatusAccepted, false},
		{BookingStatusCompleted, BookingStatusAccepted, false},
		{BookingStatusAccepted, BookingStatusPending, false},
		{BookingStatusPending, "bogus", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanTransitionBooking(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestPetStatusFor(t *testing.T) {
	assert.Equal(t, PetStatusSold, PetStatusFor(BookingStatusAccepted))
	assert.Equal(t, PetStatusSold, PetStatusFor(BookingStatusCompleted))
	assert.Equal(t, PetStatusAvailable, PetStatusFor(BookingStatusDeclined))
	assert.Equal(t, PetStatusPending, PetStatusFor(BookingStatusPending))
}

func TestValidAppointmentStatus(t *testing.T) {
	assert.True(t, ValidAppointmentStatus(AppointmentStatusPending))
	assert.True(t, ValidAppointmentStatus(AppointmentStatusAccepted))
	assert.True(t, ValidAppointmentStatus(AppointmentStatusDeclined))
	assert.False(t, ValidAppointmentStatus("completed"))
	assert.False(t, ValidAppointmentStatus(""))
}

func TestIsActiveStatus(t *testing.T) {
	assert.True(t, IsActiveStatus(BookingStatusPending))
	assert.True(t, IsActiveStatus(BookingStatusAccepted))
	assert.False(t, IsActiveStatus(BookingStatusDeclined))
	assert.False(t, IsActiveStatus(BookingStatusCompleted))
}
