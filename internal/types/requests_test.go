package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/plumber-matcher/internal/catalog"
)

func TestMatchRequest_Validation(t *testing.T) {
	valid := MatchRequest{Preferences: map[string]any{"district": "Surat"}, MaxResults: 5}
	assert.NoError(t, valid.Validate())

	noPrefs := MatchRequest{}
	assert.Error(t, noPrefs.Validate())

	tooMany := MatchRequest{Preferences: map[string]any{}, MaxResults: 500}
	assert.Error(t, tooMany.Validate())
}

func TestAttributeRequest_Validation(t *testing.T) {
	valid := AttributeRequest{
		Name:           "water_heater_service",
		DisplayName:    "Water Heater Service",
		Category:       "professional",
		Polarity:       "preferred",
		Weight:         0.5,
		Kind:           "categorical",
		PossibleValues: []string{"Yes", "No"},
	}
	assert.NoError(t, valid.Validate())

	badCategory := valid
	badCategory.Category = "cosmic"
	assert.Error(t, badCategory.Validate())

	// weights above 1 boost an attribute and are allowed up to 2
	boostedWeight := valid
	boostedWeight.Weight = 1.5
	assert.NoError(t, boostedWeight.Validate())

	badWeight := valid
	badWeight.Weight = 2.5
	assert.Error(t, badWeight.Validate())

	badDirection := valid
	badDirection.Direction = "sideways"
	assert.Error(t, badDirection.Validate())
}

func TestAttributeRequest_ToDefinition(t *testing.T) {
	req := AttributeRequest{
		Name:        "water_pressure",
		DisplayName: "Water Pressure",
		Category:    "professional",
		Polarity:    "optional",
		Weight:      0.4,
		Kind:        "numeric",
		MinValue:    0,
		MaxValue:    10,
		Unit:        "bar",
		Direction:   "higher_is_better",
	}
	require.NoError(t, req.Validate())

	def := req.ToDefinition()
	require.NoError(t, def.Validate())
	assert.Equal(t, catalog.KindNumeric, def.Kind)
	assert.Equal(t, catalog.HigherIsBetter, def.Direction)
}

func TestCreateBookingRequest_Validation(t *testing.T) {
	valid := CreateBookingRequest{
		PlumberID:   uuid.New(),
		Date:        "2026-09-15",
		TimeSlot:    "9am-12pm",
		ServiceType: "Leak Repair",
	}
	assert.NoError(t, valid.Validate())

	badDate := valid
	badDate.Date = "15-09-2026"
	assert.Error(t, badDate.Validate())

	noSlot := valid
	noSlot.TimeSlot = ""
	assert.Error(t, noSlot.Validate())
}

func TestUpdateBookingStatusRequest_Validation(t *testing.T) {
	for _, status := range []string{"pending", "confirmed", "completed", "cancelled"} {
		req := UpdateBookingStatusRequest{Status: status}
		assert.NoError(t, req.Validate(), status)
	}

	bad := UpdateBookingStatusRequest{Status: "done"}
	assert.Error(t, bad.Validate())
}

func TestCreateReviewRequest_Validation(t *testing.T) {
	valid := CreateReviewRequest{BookingID: uuid.New(), Rating: 5, Comment: "Fixed it fast"}
	assert.NoError(t, valid.Validate())

	tooLow := CreateReviewRequest{BookingID: uuid.New(), Rating: 0}
	assert.Error(t, tooLow.Validate())

	tooHigh := CreateReviewRequest{BookingID: uuid.New(), Rating: 6}
	assert.Error(t, tooHigh.Validate())
}

func TestAvailabilityRequest_Validation(t *testing.T) {
	valid := AvailabilityRequest{
		Date:      "2026-09-15",
		TimeSlot:  "9am-12pm",
		WorkType:  "Installation",
		ClientLat: 21.1702,
		ClientLon: 72.8311,
	}
	assert.NoError(t, valid.Validate())

	badLat := valid
	badLat.ClientLat = 123.0
	assert.Error(t, badLat.Validate())

	noWorkType := valid
	noWorkType.WorkType = ""
	assert.Error(t, noWorkType.Validate())
}
