package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateBookingRequest represents a customer's request to book a plumber.
type CreateBookingRequest struct {
	PlumberID   uuid.UUID `json:"plumber_id" validate:"required"`
	Date        string    `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot    string    `json:"time_slot" validate:"required,min=1"`
	ServiceType string    `json:"service_type" validate:"required,min=1"`
	ClientLat   *float64  `json:"client_lat,omitempty" validate:"omitempty,gte=-90,lte=90"`
	ClientLon   *float64  `json:"client_lon,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

// Validate validates the CreateBookingRequest using the validator.
func (r *CreateBookingRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// UpdateBookingStatusRequest represents a status transition request on an
// existing booking.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

// Validate validates the UpdateBookingStatusRequest using the validator.
func (r *UpdateBookingStatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// BookingSummary is the API shape of a booking, enriched with the names
// and cost estimate a dashboard needs.
type BookingSummary struct {
	ID           uuid.UUID `json:"id"`
	PlumberName  string    `json:"plumber_name"`
	CustomerName string    `json:"customer_name"`
	Date         string    `json:"date"`
	TimeSlot     string    `json:"time_slot"`
	Status       string    `json:"status"`
	ServiceType  string    `json:"service_type"`
	CostEstimate int       `json:"cost_estimate"`
	Reviewed     bool      `json:"reviewed"`
	DistanceKm   *float64  `json:"distance_km,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
