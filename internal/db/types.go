package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account row
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PlumberProfile represents a plumber's service profile
type PlumberProfile struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	District       string    `json:"district,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	Languages      string    `json:"languages,omitempty"`
	FreeTimeSlots  string    `json:"free_time_slots,omitempty"`
	Lat            *float64  `json:"lat,omitempty"`
	Lon            *float64  `json:"lon,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Booking represents a scheduled job between a customer and a plumber
type Booking struct {
	ID          uuid.UUID `json:"id"`
	CustomerID  uuid.UUID `json:"customer_id"`
	PlumberID   uuid.UUID `json:"plumber_id"`
	Date        time.Time `json:"date"`
	TimeSlot    string    `json:"time_slot"`
	Status      string    `json:"status"`
	ServiceType string    `json:"service_type,omitempty"`
	ClientLat   *float64  `json:"client_lat,omitempty"`
	ClientLon   *float64  `json:"client_lon,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Review represents a customer's rating of a completed booking
type Review struct {
	ID         uuid.UUID `json:"id"`
	BookingID  uuid.UUID `json:"booking_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	PlumberID  uuid.UUID `json:"plumber_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Booking statuses.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// ValidTransition reports whether a booking may move between two statuses.
// Completed and cancelled are terminal.
func ValidTransition(from, to string) bool {
	switch from {
	case BookingPending:
		return to == BookingConfirmed || to == BookingCancelled
	case BookingConfirmed:
		return to == BookingCompleted || to == BookingCancelled
	}
	return false
}
