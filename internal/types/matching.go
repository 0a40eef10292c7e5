package types

import "github.com/go-playground/validator/v10"

// MatchRequest carries the customer's preferences for a match query.
// Preference values are left untyped here: the scoring engine interprets
// them per attribute and ignores keys it does not recognize.
type MatchRequest struct {
	Preferences map[string]any `json:"preferences" validate:"required"`
	MaxResults  int            `json:"max_results,omitempty" validate:"omitempty,min=1,max=100"`
}

// Validate validates the MatchRequest using the validator.
func (r *MatchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// OptionsResponse lists the distinct values of the loaded plumber table
// that a client can offer as preference choices.
type OptionsResponse struct {
	Districts []string `json:"districts"`
	WorkTypes []string `json:"work_types"`
	TimeSlots []string `json:"time_slots"`
	Languages []string `json:"languages"`
}
