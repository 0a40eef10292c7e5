package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AvailabilityRequest asks which registered plumbers can take a job at a
// given date, slot and work type. Coordinates are required: the response
// is sorted by travel time.
type AvailabilityRequest struct {
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot  string  `json:"time_slot" validate:"required,min=1"`
	WorkType  string  `json:"work_type" validate:"required,min=1"`
	Language  string  `json:"language,omitempty"`
	ClientLat float64 `json:"client_lat" validate:"gte=-90,lte=90"`
	ClientLon float64 `json:"client_lon" validate:"gte=-180,lte=180"`
}

// Validate validates the AvailabilityRequest using the validator.
func (r *AvailabilityRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// AvailablePlumber is one entry of an availability response.
type AvailablePlumber struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	Languages      string    `json:"languages"`
	ETAMinutes     *int      `json:"eta_minutes,omitempty"`
	DistanceKm     *float64  `json:"distance_km,omitempty"`
	Rating         *float64  `json:"rating,omitempty"`
	CostEstimate   int       `json:"cost_estimate"`
}

// UpdateAvailabilityRequest lets a plumber replace their profile details.
type UpdateAvailabilityRequest struct {
	District       string   `json:"district,omitempty"`
	Specialization string   `json:"specialization,omitempty"`
	Languages      string   `json:"languages,omitempty"`
	FreeTimeSlots  string   `json:"free_time_slots,omitempty"`
	Lat            *float64 `json:"lat,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Lon            *float64 `json:"lon,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

// Validate validates the UpdateAvailabilityRequest using the validator.
func (r *UpdateAvailabilityRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
