package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/laudatorai/laudator/internal/coverletter"
	"github.com/laudatorai/laudator/internal/jobdesc"
	"github.com/laudatorai/laudator/internal/resume"
	"github.com/laudatorai/laudator/internal/tailor"
)

var (
	tailorJobPath    string
	tailorResumePath string
	tailorOut        string
	tailorWithLetter bool
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Tailor parsed resume content to a normalized job description",
	Long:  "Read a normalized job description and parsed resume content from JSON files and print the tailored resume, optionally with a template cover letter.",
	RunE:  runTailor,
}

func init() {
	tailorCmd.Flags().StringVar(&tailorJobPath, "job", "", "Path to normalized job description JSON (required)")
	tailorCmd.Flags().StringVar(&tailorResumePath, "resume", "", "Path to parsed resume content JSON (required)")
	tailorCmd.Flags().StringVar(&tailorOut, "out", "", "Write output to file instead of stdout")
	tailorCmd.Flags().BoolVar(&tailorWithLetter, "letter", false, "Include a template cover letter in the output")
	_ = tailorCmd.MarkFlagRequired("job")
	_ = tailorCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(tailorCmd)
}

// tailorOutput is the CLI output shape for the tailor command.
type tailorOutput struct {
	Tailored    *resume.ParsedResumeContent `json:"tailored"`
	CoverLetter *coverletter.Letter         `json:"cover_letter,omitempty"`
}

func runTailor(cmd *cobra.Command, _ []string) error {
	var job jobdesc.NormalizedJobDescription
	if err := readJSON(tailorJobPath, &job); err != nil {
		return err
	}

	var content resume.ParsedResumeContent
	if err := readJSON(tailorResumePath, &content); err != nil {
		return err
	}

	out := tailorOutput{Tailored: tailor.Tailor(&content, &job)}
	if tailorWithLetter {
		// No LLM in the offline path; the generator uses its template fallback.
		out.CoverLetter = coverletter.NewGenerator(nil).Generate(context.Background(), &job, out.Tailored)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	return writeOutput(tailorOut, data)
}

func readJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
