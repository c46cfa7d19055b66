// Package tailor derives tailored resume content for a target job: skills are
// re-ranked by relevance and missing job keywords are injected into experience
// descriptions and the summary.
package tailor

import (
	"fmt"
	"strings"

	"github.com/laudatorai/laudator/internal/jobdesc"
	"github.com/laudatorai/laudator/internal/resume"
)

// summaryKeywordCap bounds how many keywords are appended to the summary.
const summaryKeywordCap = 3

// Tailor returns a tailored copy of the resume content for the given job. It
// is a pure function: the inputs are never mutated, two calls on the same pair
// produce identical output, and no experience/education/project/certification
// entry is ever added or dropped. With no job skills and no keywords the
// result is an unmodified copy.
func Tailor(content *resume.ParsedResumeContent, job *jobdesc.NormalizedJobDescription) *resume.ParsedResumeContent {
	tailored := content.Clone()

	jobSkills := job.Skills
	jobKeywords := job.Keywords
	if len(jobSkills) == 0 && len(jobKeywords) == 0 {
		return tailored
	}

	tailored.Skills = reorderSkills(tailored.Skills, jobSkills)

	for i := range tailored.Experience {
		tailored.Experience[i].Description = augmentDescription(tailored.Experience[i].Description, jobKeywords)
	}

	tailored.Summary = augmentSummary(tailored.Summary, jobKeywords)

	return tailored
}

// reorderSkills partitions the resume skills into job-matching skills first,
// then the rest, preserving the original relative order within each partition.
// A resume skill matches when it contains, or is contained in, any job skill
// case-insensitively.
func reorderSkills(skills, jobSkills []string) []string {
	if len(jobSkills) == 0 {
		return skills
	}

	matched := make([]string, 0, len(skills))
	other := make([]string, 0, len(skills))

	for _, skill := range skills {
		if matchesAnyJobSkill(skill, jobSkills) {
			matched = append(matched, skill)
		} else {
			other = append(other, skill)
		}
	}

	return append(matched, other...)
}

func matchesAnyJobSkill(skill string, jobSkills []string) bool {
	skillLower := strings.ToLower(skill)
	for _, jobSkill := range jobSkills {
		jobLower := strings.ToLower(jobSkill)
		if strings.Contains(skillLower, jobLower) || strings.Contains(jobLower, skillLower) {
			return true
		}
	}
	return false
}

// augmentDescription appends every job keyword not already present in the
// description, case-insensitively. Keywords are considered independently, so
// an item receives each missing keyword.
func augmentDescription(description string, keywords []string) string {
	for _, keyword := range keywords {
		if !containsFold(description, keyword) {
			description += fmt.Sprintf(" • %s", keyword)
		}
	}
	return description
}

// augmentSummary appends one "Proficient in X." sentence for up to the first
// three keywords missing from the summary, in keyword-list order.
func augmentSummary(summary string, keywords []string) string {
	appended := 0
	for _, keyword := range keywords {
		if appended == summaryKeywordCap {
			break
		}
		if !containsFold(summary, keyword) {
			summary += fmt.Sprintf(" Proficient in %s.", keyword)
			appended++
		}
	}
	return strings.TrimSpace(summary)
}

func containsFold(text, substr string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(substr))
}
