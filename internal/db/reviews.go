package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const reviewColumns = `id, booking_id, customer_id, plumber_id, rating, comment, created_at`

func scanReview(row pgx.Row) (*Review, error) {
	var r Review
	var comment *string
	err := row.Scan(&r.ID, &r.BookingID, &r.CustomerID, &r.PlumberID, &r.Rating, &comment, &r.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan review: %w", err)
	}
	if comment != nil {
		r.Comment = *comment
	}
	return &r, nil
}

// CreateReview inserts a review for a booking and returns its ID
func (db *DB) CreateReview(ctx context.Context, r *Review) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO reviews (booking_id, customer_id, plumber_id, rating, comment)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		r.BookingID, r.CustomerID, r.PlumberID, r.Rating, r.Comment,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create review: %w", err)
	}
	return id, nil
}

// GetReviewByBooking retrieves the review of a booking. Returns nil when
// the booking has not been reviewed.
func (db *DB) GetReviewByBooking(ctx context.Context, bookingID uuid.UUID) (*Review, error) {
	return scanReview(db.pool.QueryRow(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE booking_id = $1`, bookingID))
}

// ListReviewsByPlumber retrieves a plumber's reviews, newest first
func (db *DB) ListReviewsByPlumber(ctx context.Context, plumberID uuid.UUID) ([]Review, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE plumber_id = $1 ORDER BY created_at DESC`,
		plumberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *r)
	}
	return reviews, nil
}

// AverageRating returns a plumber's mean review rating rounded to one
// decimal, or nil when the plumber has no reviews yet.
func (db *DB) AverageRating(ctx context.Context, plumberID uuid.UUID) (*float64, error) {
	var avg *float64
	err := db.pool.QueryRow(ctx,
		`SELECT ROUND(AVG(rating)::numeric, 1)::float8 FROM reviews WHERE plumber_id = $1`,
		plumberID,
	).Scan(&avg)
	if err != nil {
		return nil, fmt.Errorf("failed to compute average rating: %w", err)
	}
	return avg, nil
}
