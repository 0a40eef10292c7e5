package matching

import (
	"math"
	"strconv"
	"strings"

	"github.com/jonathan/plumber-matcher/internal/catalog"
	"github.com/jonathan/plumber-matcher/internal/dataset"
)

// Partial-credit multipliers for categorical matching.
const (
	substringCredit     = 0.8
	caseFoldCredit      = 0.6
	detailedSpecsCredit = 0.7
	anyValue            = "Any"
	workTypeAttribute   = "work_type"
)

// columnMapping translates abstract attribute names to plumber table columns.
// Attributes without an entry fall back to their own name as the column name.
var columnMapping = map[string]string{
	"work_type":            dataset.ColWorkSpecialization,
	"district":             dataset.ColDistrict,
	"language":             dataset.ColLanguagesSpoken,
	"experience_years":     dataset.ColExperienceYears,
	"license_type":         dataset.ColLicenseType,
	"insurance_status":     dataset.ColInsuranceStatus,
	"specialization_level": dataset.ColSpecializationLevel,
	"response_time":        dataset.ColResponseTimeMinutes,
	"max_distance":         dataset.ColMaxDistanceKm,
	"weekend_available":    dataset.ColWeekendAvailable,
	"emergency_service":    dataset.ColEmergencyService,
	"min_rating":           dataset.ColRating,
	"min_success_rate":     dataset.ColSuccessRate,
	"guarantee_period":     dataset.ColGuaranteePeriodDays,
	"max_cost":             dataset.ColMinOrderValue,
	"payment_methods":      dataset.ColPaymentMethods,
	"required_equipment":   dataset.ColEquipmentAvailable,
	"certifications":       dataset.ColCertifications,
}

// scoreAttribute computes the bounded contribution of one attribute for one
// plumber record. The result is always in [0, weight]. Unknown attributes,
// missing columns and unconvertible values score 0 rather than erroring, so
// a single bad field never aborts a ranking.
func (e *Engine) scoreAttribute(rec *dataset.Record, name string, requested any) float64 {
	def, ok := e.registry.Get(name)
	if !ok {
		return 0
	}

	column, ok := columnMapping[name]
	if !ok {
		column = name
	}
	providerValue, ok := rec.Column(column)
	if !ok {
		return 0
	}

	switch def.Kind {
	case catalog.KindCategorical:
		return scoreCategorical(rec, def, name, providerValue, requested)
	case catalog.KindNumeric:
		return scoreNumeric(def, providerValue, requested)
	}
	return 0
}

// scoreCategorical applies the exact / substring / case-insensitive credit
// ladder, with a detailed-specializations fallback for work_type.
func scoreCategorical(rec *dataset.Record, def catalog.Definition, name, providerValue string, requested any) float64 {
	requestedValue, ok := requested.(string)
	if !ok {
		return 0
	}

	if requestedValue == anyValue || requestedValue == providerValue {
		return def.Weight
	}
	if strings.Contains(providerValue, requestedValue) {
		return def.Weight * substringCredit
	}
	if strings.Contains(strings.ToLower(providerValue), strings.ToLower(requestedValue)) {
		return def.Weight * caseFoldCredit
	}
	if name == workTypeAttribute {
		if detailed, ok := rec.Column(dataset.ColSpecializationsDetailed); ok {
			if strings.Contains(strings.ToLower(detailed), strings.ToLower(requestedValue)) {
				return def.Weight * detailedSpecsCredit
			}
		}
	}
	return 0
}

// scoreNumeric applies the attribute's declared comparison direction.
// Numeric attributes without a direction always score 0.
func scoreNumeric(def catalog.Definition, providerValue string, requested any) float64 {
	providerVal, err := strconv.ParseFloat(providerValue, 64)
	if err != nil {
		return 0
	}
	requestedVal, ok := toFloat(requested)
	if !ok {
		return 0
	}

	switch def.Direction {
	case catalog.LowerIsBetter:
		if providerVal <= requestedVal {
			return def.Weight
		}
		if requestedVal == 0 {
			return 0
		}
		return math.Max(0, def.Weight*(1-(providerVal-requestedVal)/requestedVal))
	case catalog.HigherIsBetter:
		if providerVal >= requestedVal {
			return def.Weight
		}
		if requestedVal == 0 {
			return 0
		}
		return math.Max(0, def.Weight*(providerVal/requestedVal))
	}
	return 0
}

// toFloat converts the scalar shapes a preference value can arrive in
// (JSON numbers, strings, ints) to float64.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
