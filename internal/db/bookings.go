package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookingColumns = `id, customer_id, plumber_id, date, time_slot, status, service_type, client_lat, client_lon, created_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var serviceType *string
	err := row.Scan(&b.ID, &b.CustomerID, &b.PlumberID, &b.Date, &b.TimeSlot, &b.Status,
		&serviceType, &b.ClientLat, &b.ClientLon, &b.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan booking: %w", err)
	}
	if serviceType != nil {
		b.ServiceType = *serviceType
	}
	return &b, nil
}

// CreateBooking inserts a pending booking and returns its ID
func (db *DB) CreateBooking(ctx context.Context, b *Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO bookings (customer_id, plumber_id, date, time_slot, status, service_type, client_lat, client_lon)
		 VALUES ($1, $2, $3, $4, 'pending', $5, $6, $7)
		 RETURNING id`,
		b.CustomerID, b.PlumberID, b.Date, b.TimeSlot, b.ServiceType, b.ClientLat, b.ClientLon,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return id, nil
}

// GetBooking retrieves a booking by ID. Returns nil when not found.
func (db *DB) GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	return scanBooking(db.pool.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, bookingID))
}

// SlotTaken reports whether the plumber already has a non-cancelled booking
// for the date and time slot.
func (db *DB) SlotTaken(ctx context.Context, plumberID uuid.UUID, date time.Time, timeSlot string) (bool, error) {
	var taken bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE plumber_id = $1 AND date = $2 AND time_slot = $3 AND status != 'cancelled'
		)`,
		plumberID, date, timeSlot,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check slot availability: %w", err)
	}
	return taken, nil
}

// ListBookingsByCustomer retrieves a customer's bookings, newest first
func (db *DB) ListBookingsByCustomer(ctx context.Context, customerID uuid.UUID) ([]Booking, error) {
	return db.listBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE customer_id = $1 ORDER BY created_at DESC`,
		customerID)
}

// ListBookingsByPlumber retrieves a plumber's bookings, newest first
func (db *DB) ListBookingsByPlumber(ctx context.Context, plumberID uuid.UUID) ([]Booking, error) {
	return db.listBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE plumber_id = $1 ORDER BY created_at DESC`,
		plumberID)
}

func (db *DB) listBookings(ctx context.Context, query string, args ...any) ([]Booking, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, nil
}

// UpdateBookingStatus sets a booking's status
func (db *DB) UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, status string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE bookings SET status = $1 WHERE id = $2`,
		status, bookingID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking not found: %s", bookingID)
	}
	return nil
}

// CountBookingsByStatus returns how many bookings exist per status
func (db *DB) CountBookingsByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan booking count: %w", err)
		}
		counts[status] = n
	}
	return counts, nil
}
