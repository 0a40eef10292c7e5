package matching

import (
	"sort"

	"github.com/jonathan/plumber-matcher/internal/catalog"
)

// Fixed recommendation thresholds and texts.
const (
	fewResultsThreshold = 5
	farDistanceKm       = 30

	recommendRelax  = "Consider relaxing some preferences to find more plumbers"
	recommendExpand = "Some plumbers are far away. Consider expanding your search area"
)

// AttributeStats summarizes one attribute's contributions across a result set.
type AttributeStats struct {
	AverageScore float64 `json:"average_score"`
	MaxScore     float64 `json:"max_score"`
	MinScore     float64 `json:"min_score"`
}

// TopMatch is one entry of the report's top-5 digest.
type TopMatch struct {
	Name           string   `json:"name"`
	Score          float64  `json:"score"`
	Specialization string   `json:"specialization"`
	DistanceKm     *float64 `json:"distance,omitempty"`
	Rating         *float64 `json:"rating,omitempty"`
}

// Report summarizes a match invocation for the customer.
type Report struct {
	TotalFound        int                       `json:"total_plumbers_found"`
	PreferencesUsed   []string                  `json:"preferences_used"`
	TopMatches        []TopMatch                `json:"top_matches"`
	AttributeAnalysis map[string]AttributeStats `json:"attribute_analysis"`
	Recommendations   []string                  `json:"recommendations"`
}

// GenerateReport derives summary statistics and heuristic recommendations
// from a ranked result set. It is a pure function of its inputs.
func GenerateReport(registry *catalog.Registry, preferences map[string]any, results []Result) *Report {
	report := &Report{
		TotalFound:        len(results),
		PreferencesUsed:   sortedKeys(preferences),
		TopMatches:        []TopMatch{},
		AttributeAnalysis: make(map[string]AttributeStats),
		Recommendations:   []string{},
	}
	if len(results) == 0 {
		return report
	}

	for _, r := range results[:min(len(results), fewResultsThreshold)] {
		report.TopMatches = append(report.TopMatches, TopMatch{
			Name:           r.Provider.Name,
			Score:          r.MatchScore,
			Specialization: r.Provider.WorkSpecialization,
			DistanceKm:     r.DistanceKm,
			Rating:         r.Provider.Rating,
		})
	}

	for _, name := range report.PreferencesUsed {
		if _, known := registry.Get(name); !known {
			continue
		}
		report.AttributeAnalysis[name] = analyzeAttribute(name, results)
	}

	if len(results) < fewResultsThreshold {
		report.Recommendations = append(report.Recommendations, recommendRelax)
	}
	for _, r := range results {
		if r.DistanceKm != nil && *r.DistanceKm > farDistanceKm {
			report.Recommendations = append(report.Recommendations, recommendExpand)
			break
		}
	}
	return report
}

// analyzeAttribute computes avg/max/min of one attribute's contributions.
// Results without a recorded contribution count as 0.
func analyzeAttribute(name string, results []Result) AttributeStats {
	first := results[0].AttributeScores[name]
	sum, maxScore, minScore := 0.0, first, first
	for _, r := range results {
		score := r.AttributeScores[name]
		sum += score
		if score > maxScore {
			maxScore = score
		}
		if score < minScore {
			minScore = score
		}
	}
	return AttributeStats{
		AverageScore: round2(sum / float64(len(results))),
		MaxScore:     round2(maxScore),
		MinScore:     round2(minScore),
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
