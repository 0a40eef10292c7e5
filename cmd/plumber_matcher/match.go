package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/plumber-matcher/internal/catalog"
	"github.com/jonathan/plumber-matcher/internal/dataset"
	"github.com/jonathan/plumber-matcher/internal/matching"
	"github.com/jonathan/plumber-matcher/internal/observability"
	"github.com/spf13/cobra"
)

var (
	matchDataset    string
	matchPrefsFile  string
	matchPrefs      []string
	matchMaxResults int
	matchOutputFile string
	matchVerbose    bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank plumbers against customer preferences",
	Long: `Loads the plumber dataset, scores every plumber against the given
preferences and prints the ranked matches as JSON.

Preferences come from a JSON file (--prefs-file) or inline key=value pairs
(--pref district=Ahmedabad --pref experience_years=5). Numeric-looking inline
values are parsed as numbers.`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchDataset, "dataset", "d", "", "Path to the plumber CSV dataset (required)")
	matchCmd.Flags().StringVar(&matchPrefsFile, "prefs-file", "", "Path to a JSON file of preferences")
	matchCmd.Flags().StringArrayVarP(&matchPrefs, "pref", "p", nil, "Inline preference as key=value (repeatable)")
	matchCmd.Flags().IntVar(&matchMaxResults, "max-results", matching.DefaultMaxResults, "Maximum matches to return")
	matchCmd.Flags().StringVarP(&matchOutputFile, "out", "o", "", "Write JSON output to a file instead of stdout")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print detailed debug information")
	_ = matchCmd.MarkFlagRequired("dataset")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, _ []string) error {
	prefs, err := collectPreferences(matchPrefsFile, matchPrefs)
	if err != nil {
		return err
	}

	engine, err := loadEngine(matchDataset)
	if err != nil {
		return err
	}

	results, err := engine.Match(prefs, matchMaxResults)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	if matchVerbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintPreferences(prefs)
		printer.PrintMatches(results)
	}

	return writeJSON(matchOutputFile, map[string]any{
		"matches": results,
		"total":   len(results),
	})
}

// loadEngine builds a matching engine over the builtin catalog and the CSV
// dataset at path.
func loadEngine(path string) (*matching.Engine, error) {
	table, err := dataset.LoadCSV(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	engine := matching.NewEngine(catalog.NewRegistry())
	engine.LoadTable(table)
	return engine, nil
}

// collectPreferences merges a JSON preferences file with inline key=value
// pairs. Inline pairs win on conflict.
func collectPreferences(file string, inline []string) (map[string]any, error) {
	prefs := make(map[string]any)

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read preferences file: %w", err)
		}
		if err := json.Unmarshal(data, &prefs); err != nil {
			return nil, fmt.Errorf("failed to parse preferences JSON: %w", err)
		}
	}

	for _, pair := range inline {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid preference %q (expected key=value)", pair)
		}
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			prefs[key] = n
		} else {
			prefs[key] = value
		}
	}

	if len(prefs) == 0 {
		return nil, fmt.Errorf("no preferences given (use --prefs-file or --pref)")
	}
	return prefs, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	return writeRaw(path, append(data, '\n'))
}

func writeRaw(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Output: %s\n", path)
	return nil
}
