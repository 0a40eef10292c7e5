package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateReviewRequest represents a customer's review of a completed booking.
type CreateReviewRequest struct {
	BookingID uuid.UUID `json:"booking_id" validate:"required"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment,omitempty"`
}

// Validate validates the CreateReviewRequest using the validator.
func (r *CreateReviewRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ReviewSummary is the API shape of a review.
type ReviewSummary struct {
	ID           uuid.UUID `json:"id"`
	BookingID    uuid.UUID `json:"booking_id"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
