package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/laudatorai/laudator/internal/resume"
)

var parseOut string

var parseCmd = &cobra.Command{
	Use:   "parse <resume-file>",
	Short: "Extract structured content from a resume file",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseOut, "out", "", "Write output to file instead of stdout")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	parser := resume.NewParser()

	content, err := parser.ParseFile(args[0])
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	return writeOutput(parseOut, data)
}
