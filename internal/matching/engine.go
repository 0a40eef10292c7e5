// Package matching implements the weighted attribute scoring engine that
// ranks plumbers against a customer's preferences.
package matching

import (
	"math"
	"sort"

	"github.com/jonathan/plumber-matcher/internal/catalog"
	"github.com/jonathan/plumber-matcher/internal/dataset"
	"github.com/jonathan/plumber-matcher/internal/geo"
)

// Preference keys carrying the customer's coordinates. They are not
// attributes: they select the distance penalty instead of contributing
// to the attribute score.
const (
	PrefClientLat = "client_lat"
	PrefClientLon = "client_lon"
)

// DefaultMaxResults caps a match result set when the caller does not.
const DefaultMaxResults = 10

// nominalScore is assigned to every plumber when the customer supplied no
// scoring-relevant preferences, so location-only queries still return a
// full candidate list.
const nominalScore = 0.1

// distancePenaltyFloor keeps a very distant plumber demoted but never
// fully zeroed by distance alone.
const distancePenaltyFloor = 0.1

// Result is one ranked plumber. AttributeScores records each preference's
// individual contribution for transparency.
type Result struct {
	Provider        dataset.Record     `json:"provider"`
	MatchScore      float64            `json:"match_score"`
	AttributeScores map[string]float64 `json:"attribute_scores"`
	DistanceKm      *float64           `json:"distance_km,omitempty"`
}

// Engine scores and ranks the loaded plumber table. It holds no locks:
// callers sharing the registry across concurrent requests must serialize
// registry mutations against Match calls.
type Engine struct {
	registry *catalog.Registry
	table    *dataset.Table
}

// NewEngine creates an engine over the given attribute registry.
func NewEngine(registry *catalog.Registry) *Engine {
	return &Engine{registry: registry}
}

// LoadTable installs the plumber table the engine matches against.
func (e *Engine) LoadTable(table *dataset.Table) {
	e.table = table
}

// Table returns the currently loaded plumber table, or nil.
func (e *Engine) Table() *dataset.Table {
	return e.table
}

// Registry returns the attribute registry the engine scores with.
func (e *Engine) Registry() *catalog.Registry {
	return e.registry
}

// Match ranks every plumber in the table against the customer's preferences
// and returns the top maxResults, sorted by score descending. Ties keep
// table order. Unrecognized preference keys are ignored. Match never fails
// for data-quality reasons; the only error is calling it before a table is
// loaded.
func (e *Engine) Match(preferences map[string]any, maxResults int) ([]Result, error) {
	if e.table == nil {
		return nil, ErrNotLoaded
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	hasScoringPrefs := false
	for name, value := range preferences {
		if name != PrefClientLat && name != PrefClientLon && value != nil {
			hasScoringPrefs = true
			break
		}
	}

	clientLat, latOK := toFloat(preferences[PrefClientLat])
	clientLon, lonOK := toFloat(preferences[PrefClientLon])
	haveClient := latOK && lonOK

	results := make([]Result, 0, len(e.table.Records))
	for i := range e.table.Records {
		rec := &e.table.Records[i]

		total := 0.0
		attributeScores := make(map[string]float64)
		for name, value := range preferences {
			if value == nil {
				continue
			}
			if _, known := e.registry.Get(name); !known {
				continue
			}
			score := e.scoreAttribute(rec, name, value)
			attributeScores[name] = score
			total += score
		}

		var distanceKm *float64
		if haveClient && rec.Latitude != nil && rec.Longitude != nil {
			d := geo.HaversineKm(clientLat, clientLon, *rec.Latitude, *rec.Longitude)
			if total > 0 {
				total *= math.Max(distancePenaltyFloor, 1-d/100)
			}
			rounded := round2(d)
			distanceKm = &rounded
		}

		if total <= 0 && hasScoringPrefs {
			continue
		}
		if total == 0 {
			total = nominalScore
		}

		results = append(results, Result{
			Provider:        *rec,
			MatchScore:      round2(total),
			AttributeScores: attributeScores,
			DistanceKm:      distanceKm,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
