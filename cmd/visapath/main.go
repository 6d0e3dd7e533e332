// Package main provides the entry point for the VisaPath immigration
// planning API server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "visapath",
	Short: "Immigration timeline planning for international students",
	Long: "VisaPath generates deterministic immigration timelines and risk alerts " +
		"for international students (F-1 through OPT, H-1B, and green card), and " +
		"serves the REST API backing the web frontend.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
