package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"petmarket-service/internal/apperr"
	"petmarket-service/internal/models"

	"github.com/lib/pq"
)

// Postgres error code for unique constraint violations
const uniqueViolation = pq.ErrorCode("23505")

// HasAppointmentConflict reports whether an active service booking already
// occupies the exact appointment time for the vet. Equality is exact-timestamp
// by design; interval overlap is not considered.
func (s *Store) HasAppointmentConflict(ctx context.Context, vetID string, appointmentTime time.Time) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS(
			SELECT 1 FROM service_bookings
			WHERE vet_id = $1 AND appointment_time = $2 AND status IN ($3, $4))`,
		vetID, appointmentTime,
		models.AppointmentStatusPending, models.AppointmentStatusAccepted)
	return exists, err
}

// CreateServiceBookingTx inserts a service booking after re-checking the slot
// inside a transaction with any clashing rows locked
func (s *Store) CreateServiceBookingTx(ctx context.Context, sb *models.ServiceBooking) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var clashing []string
	err = tx.SelectContext(ctx, &clashing,
		`SELECT id FROM service_bookings
		 WHERE vet_id = $1 AND appointment_time = $2 AND status IN ($3, $4)
		 FOR UPDATE`,
		sb.VetID, sb.AppointmentTime,
		models.AppointmentStatusPending, models.AppointmentStatusAccepted)
	if err != nil {
		return fmt.Errorf("failed to check slot: %w", err)
	}
	if len(clashing) > 0 {
		return fmt.Errorf("vet %s already booked at %s: %w",
			sb.VetID, sb.AppointmentTime.Format(time.RFC3339), apperr.ErrConflict)
	}

	err = tx.QueryRowxContext(ctx,
		`INSERT INTO service_bookings (id, buyer_id, seller_id, vet_id, service_id, appointment_time, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at`,
		sb.ID, sb.BuyerID, sb.SellerID, sb.VetID, sb.ServiceID, sb.AppointmentTime, sb.Status).
		Scan(&sb.CreatedAt, &sb.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert service booking: %w", err)
	}

	return tx.Commit()
}

// GetServiceBookingByID retrieves a service booking by ID
func (s *Store) GetServiceBookingByID(ctx context.Context, id string) (*models.ServiceBooking, error) {
	var sb models.ServiceBooking
	err := s.db.GetContext(ctx, &sb, "SELECT * FROM service_bookings WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("service booking %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &sb, nil
}

// UpdateServiceBookingStatus sets the status and decline reason. The caller
// decides the reason: the default placeholder on decline, empty for any other
// status so a re-activated booking carries no stale reason.
func (s *Store) UpdateServiceBookingStatus(ctx context.Context, id, status, declineReason string) (*models.ServiceBooking, error) {
	var sb models.ServiceBooking
	err := s.db.GetContext(ctx, &sb,
		`UPDATE service_bookings
		 SET status = $1, decline_reason = $2, updated_at = NOW()
		 WHERE id = $3
		 RETURNING *`,
		status, declineReason, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("service booking %s: %w", id, apperr.ErrNotFound)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		// re-activating a declined booking whose slot was taken meanwhile
		return nil, fmt.Errorf("service booking %s: slot no longer free: %w", id, apperr.ErrConflict)
	}
	if err != nil {
		return nil, err
	}
	return &sb, nil
}

// DeleteServiceBookingTx removes a service booking, permitted only when its
// status is declined
func (s *Store) DeleteServiceBookingTx(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status string
	err = tx.GetContext(ctx, &status,
		"SELECT status FROM service_bookings WHERE id = $1 FOR UPDATE", id)
	if err == sql.ErrNoRows {
		return fmt.Errorf("service booking %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to lock service booking: %w", err)
	}

	if status != models.AppointmentStatusDeclined {
		return fmt.Errorf("service booking %s is %s, only declined bookings can be deleted: %w",
			id, status, apperr.ErrForbidden)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM service_bookings WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete service booking: %w", err)
	}

	return tx.Commit()
}

// appointmentRow is the flat shape of the appointment listing join. The
// requester columns come from whichever of buyers/sellers matched.
type appointmentRow struct {
	ID              string    `db:"id"`
	VetID           string    `db:"vet_id"`
	AppointmentTime time.Time `db:"appointment_time"`
	Status          string    `db:"status"`
	DeclineReason   string    `db:"decline_reason"`
	CreatedAt       time.Time `db:"created_at"`
	BookerID        string    `db:"booker_id"`
	BookerName      string    `db:"booker_name"`
	BookerEmail     string    `db:"booker_email"`
	BookerRole      string    `db:"booker_role"`
	ServiceID       string    `db:"svc_id"`
	ServiceName     string    `db:"svc_name"`
	ServicePrice    int64     `db:"svc_price"`
	VetName         string    `db:"vet_name"`
	VetEmail        string    `db:"vet_email"`
}

const appointmentListQuery = `
	SELECT sb.id, sb.vet_id, sb.appointment_time, sb.status, sb.decline_reason, sb.created_at,
	       COALESCE(b.id, sl.id, '') booker_id,
	       COALESCE(b.name, sl.name, '') booker_name,
	       COALESCE(b.email, sl.email, '') booker_email,
	       CASE WHEN b.id IS NOT NULL THEN 'buyer' ELSE 'seller' END booker_role,
	       svc.id svc_id, svc.service_name svc_name, svc.price svc_price,
	       v.name vet_name, v.email vet_email
	FROM service_bookings sb
	LEFT JOIN buyers b ON b.id = sb.buyer_id
	LEFT JOIN sellers sl ON sl.id = sb.seller_id
	JOIN vet_services svc ON svc.id = sb.service_id
	JOIN vets v ON v.id = sb.vet_id
	WHERE %s
	ORDER BY sb.appointment_time ASC`

func (s *Store) listAppointments(ctx context.Context, filter string, arg string) ([]models.AppointmentDetail, error) {
	rows := []appointmentRow{}
	query := fmt.Sprintf(appointmentListQuery, filter)
	if err := s.db.SelectContext(ctx, &rows, query, arg); err != nil {
		return nil, err
	}

	details := make([]models.AppointmentDetail, 0, len(rows))
	for _, r := range rows {
		details = append(details, models.AppointmentDetail{
			ID:              r.ID,
			VetID:           r.VetID,
			AppointmentTime: r.AppointmentTime,
			Status:          r.Status,
			DeclineReason:   r.DeclineReason,
			Booker: models.Booker{
				ID:    r.BookerID,
				Name:  r.BookerName,
				Email: r.BookerEmail,
				Role:  r.BookerRole,
			},
			ServiceInfo: models.ServiceInfo{
				ID:          r.ServiceID,
				ServiceName: r.ServiceName,
				Price:       r.ServicePrice,
			},
			Vet: models.VetSummary{
				ID:    r.VetID,
				Name:  r.VetName,
				Email: r.VetEmail,
			},
			CreatedAt: r.CreatedAt,
		})
	}
	return details, nil
}

// ListAppointmentsByVet retrieves a vet's appointments, soonest first
func (s *Store) ListAppointmentsByVet(ctx context.Context, vetID string) ([]models.AppointmentDetail, error) {
	return s.listAppointments(ctx, "sb.vet_id = $1", vetID)
}

// ListAppointmentsByBuyer retrieves a buyer's appointments, soonest first
func (s *Store) ListAppointmentsByBuyer(ctx context.Context, buyerID string) ([]models.AppointmentDetail, error) {
	return s.listAppointments(ctx, "sb.buyer_id = $1", buyerID)
}

// ListAppointmentsBySeller retrieves a seller's appointments, soonest first
func (s *Store) ListAppointmentsBySeller(ctx context.Context, sellerID string) ([]models.AppointmentDetail, error) {
	return s.listAppointments(ctx, "sb.seller_id = $1", sellerID)
}
