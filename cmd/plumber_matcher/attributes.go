package main

import (
	"fmt"

	"github.com/jonathan/plumber-matcher/internal/catalog"
	"github.com/spf13/cobra"
)

var (
	attributesCategory string
	attributesName     string
	attributesStats    bool
	attributesExport   bool
	attributesOutput   string
)

var attributesCmd = &cobra.Command{
	Use:   "attributes",
	Short: "Inspect the builtin attribute catalog",
	Long: `Prints the builtin matching attribute catalog as JSON. Filter by
--category or --name, print aggregate counts with --stats, or dump a
full catalog snapshot with --export (importable via the admin API).`,
	RunE: runAttributes,
}

func init() {
	attributesCmd.Flags().StringVarP(&attributesCategory, "category", "c", "", "Only attributes of this category")
	attributesCmd.Flags().StringVarP(&attributesName, "name", "n", "", "Only the attribute with this name")
	attributesCmd.Flags().BoolVar(&attributesStats, "stats", false, "Print catalog statistics instead of definitions")
	attributesCmd.Flags().BoolVar(&attributesExport, "export", false, "Dump a catalog snapshot")
	attributesCmd.Flags().StringVarP(&attributesOutput, "out", "o", "", "Write JSON output to a file instead of stdout")
	rootCmd.AddCommand(attributesCmd)
}

func runAttributes(_ *cobra.Command, _ []string) error {
	registry := catalog.NewRegistry()

	switch {
	case attributesExport:
		data, err := registry.Export()
		if err != nil {
			return fmt.Errorf("failed to export catalog: %w", err)
		}
		return writeRaw(attributesOutput, data)

	case attributesStats:
		return writeJSON(attributesOutput, registry.Stats())

	case attributesName != "":
		def, ok := registry.Get(attributesName)
		if !ok {
			return fmt.Errorf("unknown attribute: %s", attributesName)
		}
		return writeJSON(attributesOutput, def)

	case attributesCategory != "":
		byCategory := registry.GetByCategory(catalog.Category(attributesCategory))
		defs := make([]catalog.Definition, 0, len(byCategory))
		for _, name := range registry.Names() {
			if def, ok := byCategory[name]; ok {
				defs = append(defs, def)
			}
		}
		return writeJSON(attributesOutput, map[string]any{
			"attributes": defs,
			"total":      len(defs),
		})

	default:
		defs := registry.List()
		return writeJSON(attributesOutput, map[string]any{
			"attributes": defs,
			"total":      len(defs),
		})
	}
}
