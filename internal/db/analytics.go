package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// TopPlumber is one row of the completed-bookings leaderboard.
type TopPlumber struct {
	PlumberID         uuid.UUID `json:"plumber_id"`
	Name              string    `json:"name"`
	CompletedBookings int       `json:"completed_bookings"`
}

// Overview aggregates platform counts for the admin dashboard.
type Overview struct {
	UsersByRole      map[string]int `json:"users_by_role"`
	BookingsByStatus map[string]int `json:"bookings_by_status"`
	BookingsPerMonth map[string]int `json:"bookings_per_month"`
	TopPlumbers      []TopPlumber   `json:"top_plumbers"`
	TotalReviews     int            `json:"total_reviews"`
	AverageRating    *float64       `json:"average_rating,omitempty"`
}

// GetOverview collects platform-wide statistics in one call.
func (db *DB) GetOverview(ctx context.Context) (*Overview, error) {
	usersByRole, err := db.CountUsersByRole(ctx)
	if err != nil {
		return nil, err
	}
	bookingsByStatus, err := db.CountBookingsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	bookingsPerMonth, err := db.countBookingsPerMonth(ctx)
	if err != nil {
		return nil, err
	}
	topPlumbers, err := db.topPlumbersByCompleted(ctx, 5)
	if err != nil {
		return nil, err
	}

	var totalReviews int
	var avgRating *float64
	err = db.pool.QueryRow(ctx,
		`SELECT COUNT(*), ROUND(AVG(rating)::numeric, 1)::float8 FROM reviews`,
	).Scan(&totalReviews, &avgRating)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize reviews: %w", err)
	}

	return &Overview{
		UsersByRole:      usersByRole,
		BookingsByStatus: bookingsByStatus,
		BookingsPerMonth: bookingsPerMonth,
		TopPlumbers:      topPlumbers,
		TotalReviews:     totalReviews,
		AverageRating:    avgRating,
	}, nil
}

// countBookingsPerMonth groups bookings by the month of their service date.
func (db *DB) countBookingsPerMonth(ctx context.Context) (map[string]int, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT to_char(date, 'YYYY-MM'), COUNT(*) FROM bookings GROUP BY 1 ORDER BY 1`)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings per month: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var month string
		var n int
		if err := rows.Scan(&month, &n); err != nil {
			return nil, fmt.Errorf("failed to scan monthly booking count: %w", err)
		}
		counts[month] = n
	}
	return counts, nil
}

// topPlumbersByCompleted returns the plumbers with the most completed bookings.
func (db *DB) topPlumbersByCompleted(ctx context.Context, limit int) ([]TopPlumber, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT b.plumber_id, u.name, COUNT(*) AS completed
		 FROM bookings b
		 JOIN plumber_profiles p ON p.id = b.plumber_id
		 JOIN users u ON u.id = p.user_id
		 WHERE b.status = 'completed'
		 GROUP BY b.plumber_id, u.name
		 ORDER BY completed DESC, u.name
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank plumbers: %w", err)
	}
	defer rows.Close()

	var top []TopPlumber
	for rows.Next() {
		var tp TopPlumber
		if err := rows.Scan(&tp.PlumberID, &tp.Name, &tp.CompletedBookings); err != nil {
			return nil, fmt.Errorf("failed to scan plumber ranking: %w", err)
		}
		top = append(top, tp)
	}
	return top, nil
}
