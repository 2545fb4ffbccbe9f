package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/unsc-scraper/internal/schemas"
)

var validateCommand = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON output file against the resolution set schema",
	RunE:  runValidate,
}

var validateJSONPath string

func init() {
	validateCommand.Flags().StringVar(&validateJSONPath, "json", "", "Path to JSON output file (required)")

	if err := validateCommand.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCommand)
}

func runValidate(_ *cobra.Command, _ []string) error {
	if _, err := os.Stat(validateJSONPath); os.IsNotExist(err) {
		return fmt.Errorf("JSON file not found: %s", validateJSONPath)
	}

	err := schemas.ValidateResolutionSetFile(validateJSONPath)
	if err == nil {
		_, _ = fmt.Fprintf(os.Stdout, "Validation passed: %s\n", validateJSONPath)
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprintf(os.Stderr, "Validation failed: %s\n", validationErr.Error())
		os.Exit(1)
	}
	return err
}
