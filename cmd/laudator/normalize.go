package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/laudatorai/laudator/internal/jobdesc"
	"github.com/laudatorai/laudator/internal/scrape"
)

var (
	normalizeOut     string
	normalizeBrowser bool
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <url>",
	Short: "Scrape and normalize a job posting",
	Long:  "Fetch a job posting URL, extract the raw fields and print the normalized job description as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runNormalize,
}

func init() {
	normalizeCmd.Flags().StringVar(&normalizeOut, "out", "", "Write output to file instead of stdout")
	normalizeCmd.Flags().BoolVar(&normalizeBrowser, "browser", true, "Render with a headless browser before falling back to HTTP")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	scraper := scrape.NewScraper()
	scraper.UseBrowser = normalizeBrowser

	raw, err := scraper.ScrapeJobPosting(context.Background(), args[0])
	if err != nil {
		return err
	}

	normalized := jobdesc.Normalize(*raw)

	data, err := json.MarshalIndent(normalized, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	return writeOutput(normalizeOut, data)
}
