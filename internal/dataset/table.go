package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// numericColumns are the columns parsed as floats during loading.
var numericColumns = map[string]bool{
	ColExperienceYears:     true,
	ColResponseTimeMinutes: true,
	ColMaxDistanceKm:       true,
	ColRating:              true,
	ColSuccessRate:         true,
	ColGuaranteePeriodDays: true,
	ColMinOrderValue:       true,
	ColLatitude:            true,
	ColLongitude:           true,
}

// Table is the in-memory plumber table. It is loaded once and treated as
// read-only input by the matching engine.
type Table struct {
	Records []Record
	Source  string
}

// FromRecords wraps a slice of records as a table. Used by tests and by
// collaborators that assemble rows from sources other than CSV.
func FromRecords(records []Record) *Table {
	return &Table{Records: records}
}

// LoadCSV reads a plumber dataset from a CSV file with a header row. Known
// numeric columns that fail to parse are left absent rather than aborting
// the load; unknown columns are preserved in each record's Extra map.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}

	header := rows[0]
	table := &Table{
		Records: make([]Record, 0, len(rows)-1),
		Source:  path,
	}
	for _, row := range rows[1:] {
		rec := Record{}
		for i, col := range header {
			if i >= len(row) {
				break
			}
			setColumn(&rec, col, strings.TrimSpace(row[i]))
		}
		table.Records = append(table.Records, rec)
	}
	return table, nil
}

// setColumn assigns a raw CSV cell to the matching record field.
func setColumn(rec *Record, col, value string) {
	if value == "" {
		return
	}
	if numericColumns[col] {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return
		}
		switch col {
		case ColExperienceYears:
			rec.ExperienceYears = &f
		case ColResponseTimeMinutes:
			rec.ResponseTimeMinutes = &f
		case ColMaxDistanceKm:
			rec.MaxDistanceKm = &f
		case ColRating:
			rec.Rating = &f
		case ColSuccessRate:
			rec.SuccessRate = &f
		case ColGuaranteePeriodDays:
			rec.GuaranteePeriodDays = &f
		case ColMinOrderValue:
			rec.MinOrderValue = &f
		case ColLatitude:
			rec.Latitude = &f
		case ColLongitude:
			rec.Longitude = &f
		}
		return
	}

	switch col {
	case ColName:
		rec.Name = value
	case ColDistrict:
		rec.District = value
	case ColWorkSpecialization:
		rec.WorkSpecialization = value
	case ColSpecializationsDetailed:
		rec.SpecializationsDetailed = value
	case ColLanguagesSpoken:
		rec.LanguagesSpoken = value
	case ColFreeTimeSlots:
		rec.FreeTimeSlots = value
	case ColLicenseType:
		rec.LicenseType = value
	case ColInsuranceStatus:
		rec.InsuranceStatus = value
	case ColSpecializationLevel:
		rec.SpecializationLevel = value
	case ColWeekendAvailable:
		rec.WeekendAvailable = value
	case ColEmergencyService:
		rec.EmergencyService = value
	case ColPaymentMethods:
		rec.PaymentMethods = value
	case ColEquipmentAvailable:
		rec.EquipmentAvailable = value
	case ColCertifications:
		rec.Certifications = value
	default:
		if rec.Extra == nil {
			rec.Extra = make(map[string]string)
		}
		rec.Extra[col] = value
	}
}

// Districts returns the distinct districts present in the table, sorted.
func (t *Table) Districts() []string {
	return t.distinct(func(r *Record) string { return r.District }, false)
}

// WorkTypes returns the distinct work specializations, sorted.
func (t *Table) WorkTypes() []string {
	return t.distinct(func(r *Record) string { return r.WorkSpecialization }, false)
}

// TimeSlots returns the distinct free time slots, splitting comma-separated
// cells, sorted.
func (t *Table) TimeSlots() []string {
	return t.distinct(func(r *Record) string { return r.FreeTimeSlots }, true)
}

// Languages returns the distinct spoken languages, splitting comma-separated
// cells, sorted.
func (t *Table) Languages() []string {
	return t.distinct(func(r *Record) string { return r.LanguagesSpoken }, true)
}

func (t *Table) distinct(get func(*Record) string, split bool) []string {
	seen := make(map[string]bool)
	for i := range t.Records {
		raw := get(&t.Records[i])
		if raw == "" {
			continue
		}
		values := []string{raw}
		if split {
			values = strings.Split(raw, ",")
		}
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				seen[v] = true
			}
		}
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
