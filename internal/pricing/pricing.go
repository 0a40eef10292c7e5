// Package pricing estimates service costs from work type and travel distance.
package pricing

import "strings"

// DefaultBasePrice applies when a work type has no listed price.
const DefaultBasePrice = 400

// perKmCharge is the travel surcharge added per kilometer of distance
// between the customer and the plumber.
const perKmCharge = 10

// basePrices lists base service charges in rupees, keyed by normalized
// work type.
var basePrices = map[string]int{
	"leak repair":  300,
	"installation": 500,
	"maintenance":  400,
	"inspection":   200,
}

// BasePrice returns the base charge for a work type. Lookup is
// case-insensitive and ignores surrounding whitespace.
func BasePrice(workType string) int {
	if price, ok := basePrices[normalize(workType)]; ok {
		return price
	}
	return DefaultBasePrice
}

// Estimate computes the full cost estimate for a job: the work type's base
// price plus a distance surcharge. Pass a nil distance when either party's
// location is unknown; the estimate then falls back to the base price alone.
// The result is truncated to whole rupees.
func Estimate(workType string, distanceKm *float64) int {
	base := BasePrice(workType)
	if distanceKm == nil {
		return base
	}
	return int(float64(base) + perKmCharge**distanceKm)
}

func normalize(workType string) string {
	return strings.ToLower(strings.TrimSpace(workType))
}
