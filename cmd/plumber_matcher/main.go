// Package main provides the entry point for the Plumber Matcher service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "plumber_matcher",
	Short: "Plumber matching service",
	Long:  "Plumber Matcher ranks service providers against weighted customer preferences and exposes matching, booking and catalog administration via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
