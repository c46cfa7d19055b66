package tailor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laudatorai/laudator/internal/jobdesc"
	"github.com/laudatorai/laudator/internal/resume"
)

func sampleContent() *resume.ParsedResumeContent {
	return &resume.ParsedResumeContent{
		PersonalInfo: resume.PersonalInfo{Name: "Jane Doe", Email: "jane@example.com"},
		Summary:      "Backend engineer with a focus on data pipelines.",
		Experience: []resume.ExperienceItem{
			{Title: "Engineer at Acme", Description: "Built ingestion services in Go."},
			{Title: "Analyst - Initech", Description: "Automated reporting with Python."},
		},
		Education:      []resume.EducationItem{{Institution: "University of Somewhere"}},
		Skills:         []string{"SQL", "Python", "Excel"},
		Certifications: []string{},
		Projects:       []resume.ProjectItem{},
		Languages:      []string{"English"},
	}
}

func TestTailor_SkillPartitionOrder(t *testing.T) {
	job := &jobdesc.NormalizedJobDescription{Skills: []string{"Python"}}

	tailored := Tailor(sampleContent(), job)

	assert.Equal(t, []string{"Python", "SQL", "Excel"}, tailored.Skills)
}

func TestTailor_SkillMatchIsBidirectionalSubstring(t *testing.T) {
	content := sampleContent()
	content.Skills = []string{"Python programming", "Gardening"}
	job := &jobdesc.NormalizedJobDescription{Skills: []string{"python"}}

	tailored := Tailor(content, job)

	assert.Equal(t, []string{"Python programming", "Gardening"}, tailored.Skills)

	// The other direction: a short resume skill contained in a longer job skill.
	content.Skills = []string{"Gardening", "SQL"}
	job.Skills = []string{"Advanced SQL tuning"}

	tailored = Tailor(content, job)

	assert.Equal(t, []string{"SQL", "Gardening"}, tailored.Skills)
}

func TestTailor_SkillSetPreserved(t *testing.T) {
	job := &jobdesc.NormalizedJobDescription{
		Skills:   []string{"Python", "Go"},
		Keywords: []string{"Kubernetes"},
	}

	tailored := Tailor(sampleContent(), job)

	assert.ElementsMatch(t, []string{"SQL", "Python", "Excel"}, tailored.Skills)
}

func TestTailor_ExperienceKeywordAugmentation(t *testing.T) {
	job := &jobdesc.NormalizedJobDescription{Keywords: []string{"Kubernetes", "Python"}}

	tailored := Tailor(sampleContent(), job)

	require.Len(t, tailored.Experience, 2)
	assert.Equal(t, "Built ingestion services in Go. • Kubernetes • Python",
		tailored.Experience[0].Description)
	// "Python" is already present case-insensitively, so only the missing
	// keyword is appended.
	assert.Equal(t, "Automated reporting with Python. • Kubernetes",
		tailored.Experience[1].Description)
}

func TestTailor_ExperienceCountAndTitlesPreserved(t *testing.T) {
	job := &jobdesc.NormalizedJobDescription{Keywords: []string{"Terraform", "Kafka"}}
	original := sampleContent()

	tailored := Tailor(original, job)

	require.Len(t, tailored.Experience, len(original.Experience))
	for i := range original.Experience {
		assert.Equal(t, original.Experience[i].Title, tailored.Experience[i].Title)
	}
}

func TestTailor_SummaryCapOfThree(t *testing.T) {
	content := sampleContent()
	content.Summary = ""
	job := &jobdesc.NormalizedJobDescription{
		Keywords: []string{"Kafka", "Terraform", "Redis", "Spark", "Airflow"},
	}

	tailored := Tailor(content, job)

	assert.Equal(t, "Proficient in Kafka. Proficient in Terraform. Proficient in Redis.",
		tailored.Summary)
	assert.Equal(t, 3, strings.Count(tailored.Summary, "Proficient in"))
}

func TestTailor_SummarySkipsPresentKeywords(t *testing.T) {
	content := sampleContent()
	content.Summary = "Engineer who ships data pipelines."
	job := &jobdesc.NormalizedJobDescription{
		Keywords: []string{"data pipelines", "Kafka", "Terraform", "Redis"},
	}

	tailored := Tailor(content, job)

	// The present keyword does not count against the cap; the next three
	// missing keywords are appended.
	assert.Equal(t,
		"Engineer who ships data pipelines. Proficient in Kafka. Proficient in Terraform. Proficient in Redis.",
		tailored.Summary)
}

func TestTailor_NoJobSignalsReturnsUnmodifiedCopy(t *testing.T) {
	original := sampleContent()
	job := &jobdesc.NormalizedJobDescription{Title: "Mystery Role"}

	tailored := Tailor(original, job)

	assert.Equal(t, original, tailored)
	assert.NotSame(t, original, tailored)
}

func TestTailor_InputNotMutated(t *testing.T) {
	original := sampleContent()
	snapshot := original.Clone()
	job := &jobdesc.NormalizedJobDescription{
		Skills:   []string{"Python"},
		Keywords: []string{"Kubernetes", "Kafka"},
	}

	_ = Tailor(original, job)

	assert.Equal(t, snapshot, original)
}

func TestTailor_Deterministic(t *testing.T) {
	job := &jobdesc.NormalizedJobDescription{
		Skills:   []string{"SQL"},
		Keywords: []string{"Kubernetes"},
	}

	first := Tailor(sampleContent(), job)
	second := Tailor(sampleContent(), job)

	assert.Equal(t, first, second)
}
