package store

import (
	"context"
	"database/sql"
	"fmt"

	"petmarket-service/internal/apperr"
	"petmarket-service/internal/models"
)

// CreateBookingTx inserts a pet booking and marks the pet pending in a single
// transaction. The pet row is locked first, so a concurrent create against the
// same pet blocks here and then fails the availability check instead of
// slipping past it.
func (s *Store) CreateBookingTx(ctx context.Context, booking *models.Booking) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var petStatus string
	err = tx.GetContext(ctx, &petStatus,
		"SELECT status FROM pets WHERE id = $1 FOR UPDATE", booking.PetID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("pet %s: %w", booking.PetID, apperr.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to lock pet: %w", err)
	}

	if petStatus != models.PetStatusAvailable {
		return fmt.Errorf("pet %s is %s: %w", booking.PetID, petStatus, apperr.ErrConflict)
	}

	var active bool
	err = tx.GetContext(ctx, &active,
		"SELECT EXISTS(SELECT 1 FROM bookings WHERE pet_id = $1 AND status IN ($2, $3))",
		booking.PetID, models.BookingStatusPending, models.BookingStatusAccepted)
	if err != nil {
		return fmt.Errorf("failed to check active bookings: %w", err)
	}
	if active {
		return fmt.Errorf("pet %s already has an active booking: %w", booking.PetID, apperr.ErrConflict)
	}

	err = tx.QueryRowxContext(ctx,
		`INSERT INTO bookings (id, pet_id, buyer_id, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING requested_at, updated_at`,
		booking.ID, booking.PetID, booking.BuyerID, booking.Status).
		Scan(&booking.RequestedAt, &booking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE pets SET status = $1, updated_at = NOW() WHERE id = $2",
		models.PetStatusPending, booking.PetID)
	if err != nil {
		return fmt.Errorf("failed to update pet status: %w", err)
	}

	return tx.Commit()
}

// TransitionBookingTx moves a booking to a new status and mirrors the pet
// status in the same transaction. Returns ErrValidation when the current
// status does not allow the transition.
func (s *Store) TransitionBookingTx(ctx context.Context, bookingID, toStatus string) (*models.Booking, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var booking models.Booking
	err = tx.GetContext(ctx, &booking,
		"SELECT * FROM bookings WHERE id = $1 FOR UPDATE", bookingID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("booking %s: %w", bookingID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock booking: %w", err)
	}

	if !models.CanTransitionBooking(booking.Status, toStatus) {
		return nil, fmt.Errorf("cannot move booking from %s to %s: %w",
			booking.Status, toStatus, apperr.ErrValidation)
	}

	err = tx.QueryRowxContext(ctx,
		"UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at",
		toStatus, bookingID).Scan(&booking.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	booking.Status = toStatus

	_, err = tx.ExecContext(ctx,
		"UPDATE pets SET status = $1, updated_at = NOW() WHERE id = $2",
		models.PetStatusFor(toStatus), booking.PetID)
	if err != nil {
		return nil, fmt.Errorf("failed to update pet status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetBookingByID retrieves a booking by ID
func (s *Store) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.GetContext(ctx, &booking, "SELECT * FROM bookings WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("booking %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListBookingsBySeller retrieves bookings for pets owned by a seller, joined
// with pet and buyer summaries, newest request first
func (s *Store) ListBookingsBySeller(ctx context.Context, sellerID string) ([]models.BookingDetail, error) {
	query := `
		SELECT bk.id, bk.pet_id, bk.buyer_id, bk.status, bk.requested_at, bk.updated_at,
		       p.id "pet.id", p.pet_name "pet.pet_name", p.animal_type "pet.animal_type",
		       p.breed "pet.breed", p.status "pet.status",
		       b.id "buyer.id", b.name "buyer.name", b.email "buyer.email", b.phone "buyer.phone"
		FROM bookings bk
		JOIN pets p ON p.id = bk.pet_id
		JOIN buyers b ON b.id = bk.buyer_id
		WHERE p.seller_id = $1
		ORDER BY bk.requested_at DESC`

	details := []models.BookingDetail{}
	err := s.db.SelectContext(ctx, &details, query, sellerID)
	return details, err
}
