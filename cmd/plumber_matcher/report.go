package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jonathan/plumber-matcher/internal/matching"
	"github.com/jonathan/plumber-matcher/internal/observability"
	"github.com/jonathan/plumber-matcher/internal/rendering"
	"github.com/spf13/cobra"
)

var (
	reportDataset    string
	reportPrefsFile  string
	reportPrefs      []string
	reportMaxResults int
	reportOutputFile string
	reportFormat     string
	reportTimeout    time.Duration
	reportVerbose    bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a matching report",
	Long: `Runs a match and generates a summary report with top matches,
per-attribute score analysis and recommendations. Output formats: json,
html, or pdf (pdf requires Chrome/Chromium installed).`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportDataset, "dataset", "d", "", "Path to the plumber CSV dataset (required)")
	reportCmd.Flags().StringVar(&reportPrefsFile, "prefs-file", "", "Path to a JSON file of preferences")
	reportCmd.Flags().StringArrayVarP(&reportPrefs, "pref", "p", nil, "Inline preference as key=value (repeatable)")
	reportCmd.Flags().IntVar(&reportMaxResults, "max-results", matching.DefaultMaxResults, "Maximum matches to analyze")
	reportCmd.Flags().StringVarP(&reportOutputFile, "out", "o", "", "Output file (required for pdf)")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "json", "Output format: json, html or pdf")
	reportCmd.Flags().DurationVar(&reportTimeout, "timeout", rendering.DefaultPDFTimeout, "PDF rendering timeout")
	reportCmd.Flags().BoolVarP(&reportVerbose, "verbose", "v", false, "Print detailed debug information")
	_ = reportCmd.MarkFlagRequired("dataset")
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
	prefs, err := collectPreferences(reportPrefsFile, reportPrefs)
	if err != nil {
		return err
	}

	engine, err := loadEngine(reportDataset)
	if err != nil {
		return err
	}

	results, err := engine.Match(prefs, reportMaxResults)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}
	report := matching.GenerateReport(engine.Registry(), prefs, results)

	if reportVerbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintPreferences(prefs)
		printer.PrintMatches(results)
		printer.PrintReport(report)
	}

	switch strings.ToLower(reportFormat) {
	case "json":
		return writeJSON(reportOutputFile, map[string]any{
			"report":  report,
			"matches": results,
		})

	case "html":
		html, err := rendering.RenderHTML(report)
		if err != nil {
			return err
		}
		if reportOutputFile == "" {
			_, err = fmt.Fprintln(os.Stdout, html)
			return err
		}
		if err := os.WriteFile(reportOutputFile, []byte(html), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Output: %s\n", reportOutputFile)
		return nil

	case "pdf":
		if reportOutputFile == "" {
			return fmt.Errorf("--out is required for pdf output")
		}
		html, err := rendering.RenderHTML(report)
		if err != nil {
			return err
		}
		pdf, err := rendering.HTMLToPDF(context.Background(), html, reportTimeout, reportVerbose)
		if err != nil {
			return err
		}
		if err := os.WriteFile(reportOutputFile, pdf, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Output: %s (%d bytes)\n", reportOutputFile, len(pdf))
		return nil

	default:
		return fmt.Errorf("unknown format %q (expected json, html or pdf)", reportFormat)
	}
}
