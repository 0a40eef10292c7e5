package types

import (
	"github.com/go-playground/validator/v10"

	"github.com/jonathan/plumber-matcher/internal/catalog"
)

// AttributeRequest represents an admin request to create or update an
// attribute definition.
type AttributeRequest struct {
	Name           string   `json:"name" validate:"required,min=1"`
	DisplayName    string   `json:"display_name" validate:"required,min=1"`
	Description    string   `json:"description,omitempty"`
	Category       string   `json:"category" validate:"required,oneof=basic professional logistical quality financial"`
	Polarity       string   `json:"polarity" validate:"required,oneof=required preferred optional negative"`
	Weight         float64  `json:"weight" validate:"gte=0,lte=2"`
	Kind           string   `json:"kind" validate:"required,oneof=categorical numeric"`
	PossibleValues []string `json:"possible_values,omitempty"`
	MinValue       float64  `json:"min_value,omitempty"`
	MaxValue       float64  `json:"max_value,omitempty"`
	Unit           string   `json:"unit,omitempty"`
	Direction      string   `json:"direction,omitempty" validate:"omitempty,oneof=lower_is_better higher_is_better"`
}

// Validate validates the AttributeRequest using the validator.
func (r *AttributeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ToDefinition converts the request into a catalog definition. The
// definition's own Validate enforces the categorical/numeric shape rules
// the field tags cannot express.
func (r *AttributeRequest) ToDefinition() catalog.Definition {
	return catalog.Definition{
		Name:           r.Name,
		DisplayName:    r.DisplayName,
		Description:    r.Description,
		Category:       catalog.Category(r.Category),
		Polarity:       catalog.Polarity(r.Polarity),
		Weight:         r.Weight,
		Kind:           catalog.ValueKind(r.Kind),
		PossibleValues: r.PossibleValues,
		MinValue:       r.MinValue,
		MaxValue:       r.MaxValue,
		Unit:           r.Unit,
		Direction:      catalog.Direction(r.Direction),
	}
}

// AttributeTestRequest represents an admin request to dry-run one
// attribute against a sample value without touching the catalog.
type AttributeTestRequest struct {
	Name  string `json:"name" validate:"required,min=1"`
	Value any    `json:"value" validate:"required"`
}

// Validate validates the AttributeTestRequest using the validator.
func (r *AttributeTestRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
