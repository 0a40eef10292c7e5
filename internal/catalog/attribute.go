// Package catalog provides the dynamic attribute schema used for plumber matching.
package catalog

import "fmt"

// Category groups related attributes for presentation. It has no effect on scoring.
type Category string

// Attribute categories.
const (
	CategoryBasic        Category = "basic"
	CategoryProfessional Category = "professional"
	CategoryLogistical   Category = "logistical"
	CategoryQuality      Category = "quality"
	CategoryFinancial    Category = "financial"
)

// Polarity describes how an attribute is intended to influence matching.
// The engine currently treats every polarity the same way: an attribute
// contributes to the score when present and contributes 0 when absent.
type Polarity string

// Attribute polarities.
const (
	PolarityRequired  Polarity = "required"
	PolarityPreferred Polarity = "preferred"
	PolarityOptional  Polarity = "optional"
	PolarityNegative  Polarity = "negative"
)

// ValueKind distinguishes the two value shapes an attribute can take.
type ValueKind string

// Value kinds.
const (
	KindCategorical ValueKind = "categorical"
	KindNumeric     ValueKind = "numeric"
)

// Direction declares the comparison polarity of a numeric attribute:
// whether lower or higher provider values are preferable. Numeric
// attributes without a direction always score 0.
type Direction string

// Comparison directions.
const (
	LowerIsBetter  Direction = "lower_is_better"
	HigherIsBetter Direction = "higher_is_better"
)

// Definition describes one matchable dimension. The Kind field selects
// which of the two value shapes applies: categorical definitions carry
// PossibleValues, numeric definitions carry MinValue/MaxValue/Unit and a
// comparison Direction. Use NewCategorical and NewNumeric to build
// definitions that satisfy the shape invariant.
type Definition struct {
	Name           string    `json:"name"`
	DisplayName    string    `json:"display_name"`
	Description    string    `json:"description"`
	Category       Category  `json:"category"`
	Polarity       Polarity  `json:"polarity"`
	Weight         float64   `json:"weight"`
	Kind           ValueKind `json:"kind"`
	PossibleValues []string  `json:"possible_values,omitempty"`
	MinValue       float64   `json:"min_value,omitempty"`
	MaxValue       float64   `json:"max_value,omitempty"`
	Unit           string    `json:"unit,omitempty"`
	Direction      Direction `json:"direction,omitempty"`
}

// NewCategorical builds a categorical attribute definition.
func NewCategorical(name, displayName, description string, category Category, polarity Polarity, weight float64, possibleValues ...string) Definition {
	return Definition{
		Name:           name,
		DisplayName:    displayName,
		Description:    description,
		Category:       category,
		Polarity:       polarity,
		Weight:         weight,
		Kind:           KindCategorical,
		PossibleValues: possibleValues,
	}
}

// NewNumeric builds a numeric attribute definition.
func NewNumeric(name, displayName, description string, category Category, polarity Polarity, weight, minValue, maxValue float64, unit string, direction Direction) Definition {
	return Definition{
		Name:        name,
		DisplayName: displayName,
		Description: description,
		Category:    category,
		Polarity:    polarity,
		Weight:      weight,
		Kind:        KindNumeric,
		MinValue:    minValue,
		MaxValue:    maxValue,
		Unit:        unit,
		Direction:   direction,
	}
}

// Validate checks the structural invariants of a definition.
func (d Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("attribute name is required")
	}
	if d.Weight < 0 {
		return fmt.Errorf("attribute %s: weight must be non-negative, got %v", d.Name, d.Weight)
	}
	switch d.Category {
	case CategoryBasic, CategoryProfessional, CategoryLogistical, CategoryQuality, CategoryFinancial:
	default:
		return fmt.Errorf("attribute %s: unknown category %q", d.Name, d.Category)
	}
	switch d.Polarity {
	case PolarityRequired, PolarityPreferred, PolarityOptional, PolarityNegative:
	default:
		return fmt.Errorf("attribute %s: unknown polarity %q", d.Name, d.Polarity)
	}
	switch d.Kind {
	case KindCategorical:
		if len(d.PossibleValues) == 0 {
			return fmt.Errorf("attribute %s: categorical attributes need at least one possible value", d.Name)
		}
		if d.MinValue != 0 || d.MaxValue != 0 || d.Unit != "" || d.Direction != "" {
			return fmt.Errorf("attribute %s: categorical attributes cannot carry numeric bounds", d.Name)
		}
	case KindNumeric:
		if len(d.PossibleValues) > 0 {
			return fmt.Errorf("attribute %s: numeric attributes cannot carry possible values", d.Name)
		}
		if d.MaxValue < d.MinValue {
			return fmt.Errorf("attribute %s: max value %v is below min value %v", d.Name, d.MaxValue, d.MinValue)
		}
		if d.Direction != "" && d.Direction != LowerIsBetter && d.Direction != HigherIsBetter {
			return fmt.Errorf("attribute %s: unknown direction %q", d.Name, d.Direction)
		}
	default:
		return fmt.Errorf("attribute %s: unknown value kind %q", d.Name, d.Kind)
	}
	return nil
}
