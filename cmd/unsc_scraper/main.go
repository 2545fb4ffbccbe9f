// Package main implements the unsc_scraper CLI, which collects United Nations
// Security Council resolutions from the un.org resolutions index.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "unsc_scraper",
	Short: "United Nations Security Council resolutions scraper",
	Long:  "unsc_scraper walks the UN Security Council resolutions index year by year and writes every resolution's year, symbol, title and document URL to CSV or JSON.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
