// Package main provides the laudator CLI: the API server plus offline
// commands for normalizing postings, parsing resumes and tailoring.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "laudator",
	Short: "Job application assistant",
	Long:  "Laudator scrapes and normalizes job postings, extracts structured resume content, and tailors resumes and cover letters to a target job.",
}

func main() {
	// Load .env if present; real environment wins.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// writeOutput writes JSON (or HTML) output to the given path, or stdout when
// the path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
