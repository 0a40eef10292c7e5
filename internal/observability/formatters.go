// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/plumber-matcher/internal/matching"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintPreferences outputs the preferences a match was run with.
func (p *Printer) PrintPreferences(preferences map[string]any) {
	if len(preferences) == 0 {
		return
	}

	keys := make([]string, 0, len(preferences))
	for k := range preferences {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("%-22s %v\n", k+":", preferences[k]))
	}
	p.printBox("PREFERENCES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatches outputs a human-readable summary of ranked match results.
func (p *Printer) PrintMatches(results []matching.Result) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Matches found: %d\n", len(results)))
	if len(results) > 0 {
		sb.WriteString("\n")
	}

	count := min(len(results), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := results[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, r.Provider.Name))
		sb.WriteString(fmt.Sprintf("    Score: %.2f\n", r.MatchScore))
		if r.Provider.District != "" {
			sb.WriteString(fmt.Sprintf("    District: %s\n", r.Provider.District))
		}
		if r.DistanceKm != nil {
			sb.WriteString(fmt.Sprintf("    Distance: %.1f km\n", *r.DistanceKm))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(results)-maxItemsToShow))
	}

	p.printBox("MATCH RESULTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs a human-readable summary of a matching report.
func (p *Printer) PrintReport(report *matching.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Plumbers found:   %d\n", report.TotalFound))
	sb.WriteString(fmt.Sprintf("Preferences used: %s\n", strings.Join(report.PreferencesUsed, ", ")))

	if len(report.TopMatches) > 0 {
		sb.WriteString("\nTop matches:\n")
		for i, m := range report.TopMatches {
			sb.WriteString(fmt.Sprintf("  %d. %s (%.2f)\n", i+1, m.Name, m.Score))
		}
	}

	if len(report.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for _, rec := range report.Recommendations {
			sb.WriteString(fmt.Sprintf("  • %s\n", rec))
		}
	}

	p.printBox("MATCHING REPORT", strings.TrimSuffix(sb.String(), "\n"))
}
