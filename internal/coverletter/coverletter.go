// Package coverletter generates cover letters for a job application from the
// normalized job description and the candidate's parsed resume. Generation
// goes through the LLM when one is configured and degrades to a deterministic
// template letter when it is not, or when the model output is unusable.
package coverletter

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/laudatorai/laudator/internal/jobdesc"
	"github.com/laudatorai/laudator/internal/llm"
	"github.com/laudatorai/laudator/internal/resume"
)

// Letter is the structured cover letter produced for an application.
type Letter struct {
	Salutation string `json:"salutation"`
	Body       string `json:"body"`
	Closing    string `json:"closing"`
}

// Text renders the letter as plain text.
func (l *Letter) Text() string {
	return l.Salutation + "\n\n" + l.Body + "\n\n" + l.Closing
}

// Generator produces cover letters. A nil client means fallback-only
// operation.
type Generator struct {
	client llm.Client
}

// NewGenerator returns a generator backed by the given LLM client.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client}
}

// Generate produces a cover letter for the job and resume pair. It never
// fails: LLM errors and malformed model output fall back to the template
// letter.
func (g *Generator) Generate(ctx context.Context, job *jobdesc.NormalizedJobDescription, content *resume.ParsedResumeContent) *Letter {
	if g.client == nil {
		return fallbackLetter(job, content)
	}

	raw, err := g.client.GenerateJSON(ctx, buildPrompt(job, content))
	if err != nil {
		log.Printf("[coverletter] generation failed, using template letter: %v", err)
		return fallbackLetter(job, content)
	}

	letter, err := parseLetterJSON(raw)
	if err != nil {
		log.Printf("[coverletter] unusable model output, using template letter: %v", err)
		return fallbackLetter(job, content)
	}
	return letter
}

// buildPrompt assembles the generation prompt from job and resume fields.
func buildPrompt(job *jobdesc.NormalizedJobDescription, content *resume.ParsedResumeContent) string {
	var sb strings.Builder

	sb.WriteString("Write a professional cover letter for the following job application.\n")
	sb.WriteString("Respond with a JSON object with keys \"salutation\", \"body\" and \"closing\".\n\n")

	sb.WriteString(fmt.Sprintf("Job title: %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("Company: %s\n", job.Company))
	if len(job.Requirements) > 0 {
		sb.WriteString("Key requirements:\n")
		for _, req := range job.Requirements {
			sb.WriteString("- " + req + "\n")
		}
	}
	if len(job.Skills) > 0 {
		sb.WriteString("Skills sought: " + strings.Join(job.Skills, ", ") + "\n")
	}

	sb.WriteString(fmt.Sprintf("\nCandidate: %s\n", content.PersonalInfo.Name))
	if content.Summary != "" {
		sb.WriteString("Summary: " + content.Summary + "\n")
	}
	if len(content.Skills) > 0 {
		sb.WriteString("Candidate skills: " + strings.Join(content.Skills, ", ") + "\n")
	}
	for _, item := range content.Experience {
		sb.WriteString("Experience: " + item.Title + "\n")
	}

	return sb.String()
}

// parseLetterJSON decodes the model response, tolerating a missing salutation
// or closing but never a missing body.
func parseLetterJSON(raw string) (*Letter, error) {
	var letter Letter
	if err := json.Unmarshal([]byte(raw), &letter); err != nil {
		return nil, fmt.Errorf("failed to parse letter JSON: %w", err)
	}
	if strings.TrimSpace(letter.Body) == "" {
		return nil, fmt.Errorf("letter body is empty")
	}
	if letter.Salutation == "" {
		letter.Salutation = "Dear Hiring Manager,"
	}
	if letter.Closing == "" {
		letter.Closing = "Sincerely,"
	}
	return &letter, nil
}

// fallbackLetter builds a deterministic letter from the structured inputs.
func fallbackLetter(job *jobdesc.NormalizedJobDescription, content *resume.ParsedResumeContent) *Letter {
	role := job.Title
	if role == "" {
		role = "this role"
	} else {
		role = "the " + role + " role"
	}

	company := job.Company
	if company == "" {
		company = "your company"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("I am writing to express my interest in %s at %s.", role, company))
	if content.Summary != "" {
		sb.WriteString(" " + content.Summary)
	}
	if len(content.Skills) > 0 {
		top := content.Skills
		if len(top) > 3 {
			top = top[:3]
		}
		sb.WriteString(fmt.Sprintf(" My background in %s aligns well with what you are looking for.",
			strings.Join(top, ", ")))
	}
	sb.WriteString(" I would welcome the opportunity to discuss how I can contribute to your team.")

	closing := "Sincerely,"
	if content.PersonalInfo.Name != "" {
		closing += "\n" + content.PersonalInfo.Name
	}

	return &Letter{
		Salutation: "Dear Hiring Manager,",
		Body:       sb.String(),
		Closing:    closing,
	}
}
