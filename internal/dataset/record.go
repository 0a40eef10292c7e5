// Package dataset loads and exposes the read-only plumber table.
package dataset

import (
	"encoding/json"
	"strconv"
)

// Canonical column names of the plumber table.
const (
	ColName                    = "Name"
	ColDistrict                = "District"
	ColWorkSpecialization      = "Work_Specialization"
	ColSpecializationsDetailed = "Specializations_Detailed"
	ColLanguagesSpoken         = "Languages_Spoken"
	ColFreeTimeSlots           = "Free_Time_Slots"
	ColLicenseType             = "License_Type"
	ColInsuranceStatus         = "Insurance_Status"
	ColSpecializationLevel     = "Specialization_Level"
	ColWeekendAvailable        = "Weekend_Available"
	ColEmergencyService        = "Emergency_Service"
	ColPaymentMethods          = "Payment_Methods"
	ColEquipmentAvailable      = "Equipment_Available"
	ColCertifications          = "Certifications"
	ColExperienceYears         = "Experience_Years"
	ColResponseTimeMinutes     = "Response_Time_Minutes"
	ColMaxDistanceKm           = "Max_Distance_km"
	ColRating                  = "Rating"
	ColSuccessRate             = "Success_Rate"
	ColGuaranteePeriodDays     = "Guarantee_Period_Days"
	ColMinOrderValue           = "Min_Order_Value"
	ColLatitude                = "Latitude"
	ColLongitude               = "Longitude"
)

// Record is one row of the plumber table. Known columns are typed fields;
// an empty string or nil pointer means the column was absent for this row.
// Columns the loader does not recognize are kept verbatim in Extra.
type Record struct {
	Name                    string
	District                string
	WorkSpecialization      string
	SpecializationsDetailed string
	LanguagesSpoken         string
	FreeTimeSlots           string
	LicenseType             string
	InsuranceStatus         string
	SpecializationLevel     string
	WeekendAvailable        string
	EmergencyService        string
	PaymentMethods          string
	EquipmentAvailable      string
	Certifications          string

	ExperienceYears     *float64
	ResponseTimeMinutes *float64
	MaxDistanceKm       *float64
	Rating              *float64
	SuccessRate         *float64
	GuaranteePeriodDays *float64
	MinOrderValue       *float64
	Latitude            *float64
	Longitude           *float64

	Extra map[string]string
}

// Column returns the raw value of a column by its canonical name, along with
// whether the record carries a value for it. Numeric columns are formatted
// back to their shortest decimal representation.
func (r *Record) Column(name string) (string, bool) {
	switch name {
	case ColName:
		return stringColumn(r.Name)
	case ColDistrict:
		return stringColumn(r.District)
	case ColWorkSpecialization:
		return stringColumn(r.WorkSpecialization)
	case ColSpecializationsDetailed:
		return stringColumn(r.SpecializationsDetailed)
	case ColLanguagesSpoken:
		return stringColumn(r.LanguagesSpoken)
	case ColFreeTimeSlots:
		return stringColumn(r.FreeTimeSlots)
	case ColLicenseType:
		return stringColumn(r.LicenseType)
	case ColInsuranceStatus:
		return stringColumn(r.InsuranceStatus)
	case ColSpecializationLevel:
		return stringColumn(r.SpecializationLevel)
	case ColWeekendAvailable:
		return stringColumn(r.WeekendAvailable)
	case ColEmergencyService:
		return stringColumn(r.EmergencyService)
	case ColPaymentMethods:
		return stringColumn(r.PaymentMethods)
	case ColEquipmentAvailable:
		return stringColumn(r.EquipmentAvailable)
	case ColCertifications:
		return stringColumn(r.Certifications)
	case ColExperienceYears:
		return floatColumn(r.ExperienceYears)
	case ColResponseTimeMinutes:
		return floatColumn(r.ResponseTimeMinutes)
	case ColMaxDistanceKm:
		return floatColumn(r.MaxDistanceKm)
	case ColRating:
		return floatColumn(r.Rating)
	case ColSuccessRate:
		return floatColumn(r.SuccessRate)
	case ColGuaranteePeriodDays:
		return floatColumn(r.GuaranteePeriodDays)
	case ColMinOrderValue:
		return floatColumn(r.MinOrderValue)
	case ColLatitude:
		return floatColumn(r.Latitude)
	case ColLongitude:
		return floatColumn(r.Longitude)
	}
	v, ok := r.Extra[name]
	if v == "" {
		return "", false
	}
	return v, ok
}

func stringColumn(v string) (string, bool) {
	return v, v != ""
}

func floatColumn(v *float64) (string, bool) {
	if v == nil {
		return "", false
	}
	return strconv.FormatFloat(*v, 'f', -1, 64), true
}

// MarshalJSON serializes a record as a flat object keyed by canonical column
// names, matching the shape of the source table. Absent columns are omitted.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 24+len(r.Extra))
	for k, v := range r.Extra {
		out[k] = v
	}

	strings := map[string]string{
		ColName:                    r.Name,
		ColDistrict:                r.District,
		ColWorkSpecialization:      r.WorkSpecialization,
		ColSpecializationsDetailed: r.SpecializationsDetailed,
		ColLanguagesSpoken:         r.LanguagesSpoken,
		ColFreeTimeSlots:           r.FreeTimeSlots,
		ColLicenseType:             r.LicenseType,
		ColInsuranceStatus:         r.InsuranceStatus,
		ColSpecializationLevel:     r.SpecializationLevel,
		ColWeekendAvailable:        r.WeekendAvailable,
		ColEmergencyService:        r.EmergencyService,
		ColPaymentMethods:          r.PaymentMethods,
		ColEquipmentAvailable:      r.EquipmentAvailable,
		ColCertifications:          r.Certifications,
	}
	for k, v := range strings {
		if v != "" {
			out[k] = v
		}
	}

	floats := map[string]*float64{
		ColExperienceYears:     r.ExperienceYears,
		ColResponseTimeMinutes: r.ResponseTimeMinutes,
		ColMaxDistanceKm:       r.MaxDistanceKm,
		ColRating:              r.Rating,
		ColSuccessRate:         r.SuccessRate,
		ColGuaranteePeriodDays: r.GuaranteePeriodDays,
		ColMinOrderValue:       r.MinOrderValue,
		ColLatitude:            r.Latitude,
		ColLongitude:           r.Longitude,
	}
	for k, v := range floats {
		if v != nil {
			out[k] = *v
		}
	}

	return json.Marshal(out)
}
