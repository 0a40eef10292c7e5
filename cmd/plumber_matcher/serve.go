package main

import (
	"fmt"
	"os"

	"github.com/jonathan/plumber-matcher/internal/config"
	"github.com/jonathan/plumber-matcher/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveConfigPath string
	serveAddr       string
	serveDataset    string
	serveSchemaDir  string
	serveMaxResults int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the matching, booking and catalog
administration endpoints. Without DATABASE_URL the server runs in
matching-only mode and account/booking endpoints return 503.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "HTTP listen address (default :8080)")
	serveCmd.Flags().StringVarP(&serveDataset, "dataset", "d", "", "Path to the plumber CSV dataset")
	serveCmd.Flags().StringVar(&serveSchemaDir, "schema-dir", "", "Directory holding JSON schemas (default schemas)")
	serveCmd.Flags().IntVar(&serveMaxResults, "max-results", 0, "Default result cap for match queries")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Config{
		Addr:       serveAddr,
		Dataset:    serveDataset,
		SchemaDir:  serveSchemaDir,
		MaxResults: serveMaxResults,
	}

	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = cfg.MergeWithDefaults(*loaded)
	}

	// DATABASE_URL is optional: the matching endpoints work without it
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	srv, err := server.New(server.Config{
		Addr:        cfg.Addr,
		Dataset:     cfg.Dataset,
		SchemaDir:   cfg.SchemaDir,
		DatabaseURL: cfg.DatabaseURL,
		MaxResults:  cfg.MaxResults,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
