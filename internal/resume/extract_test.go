package resume

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `John Doe
john.doe@example.com
(555) 123-4567
123 Main Street

Summary
Backend developer focused on reliable systems.
Comfortable owning services end to end.

Experience
Senior Developer - Acme Corp
Built payment services in Go.
Led a team of five.
Platform Engineer at Initech
Maintained the deployment pipeline.

Education
University of Somewhere
BSc Computer Science

Skills
Python, Go, SQL
Kubernetes, Terraform

Certifications
AWS Certified Solutions Architect

Projects
Inventory tracking system

Languages
English, Spanish
`

func TestExtract_PersonalInfo(t *testing.T) {
	content := Extract(sampleResume)

	assert.Equal(t, "john.doe@example.com", content.PersonalInfo.Email)
	assert.Equal(t, "(555) 123-4567", content.PersonalInfo.Phone)
	assert.Equal(t, "123 Main Street", content.PersonalInfo.Address)
}

func TestExtract_Summary(t *testing.T) {
	content := Extract(sampleResume)

	assert.Equal(t,
		"Backend developer focused on reliable systems. Comfortable owning services end to end.",
		content.Summary)
}

func TestExtract_ExperienceItems(t *testing.T) {
	content := Extract(sampleResume)

	require.Len(t, content.Experience, 2)
	assert.Equal(t, "Senior Developer - Acme Corp", content.Experience[0].Title)
	assert.Equal(t, "Built payment services in Go. Led a team of five.", content.Experience[0].Description)
	assert.Equal(t, "Platform Engineer at Initech", content.Experience[1].Title)
	assert.Equal(t, "Maintained the deployment pipeline.", content.Experience[1].Description)
}

func TestExtract_EducationOneItemPerLine(t *testing.T) {
	content := Extract(sampleResume)

	// Continuation lines become their own entries; this mirrors the known
	// heuristic limitation and is asserted deliberately.
	require.Len(t, content.Education, 2)
	assert.Equal(t, "University of Somewhere", content.Education[0].Institution)
	assert.Equal(t, "BSc Computer Science", content.Education[1].Institution)
}

func TestExtract_SkillsCommaSplit(t *testing.T) {
	content := Extract(sampleResume)

	assert.Equal(t, []string{"Python", "Go", "SQL", "Kubernetes", "Terraform"}, content.Skills)
}

func TestExtract_CertificationsProjectsLanguages(t *testing.T) {
	content := Extract(sampleResume)

	assert.Equal(t, []string{"AWS Certified Solutions Architect"}, content.Certifications)
	require.Len(t, content.Projects, 1)
	assert.Equal(t, "Inventory tracking system", content.Projects[0].Title)
	assert.Equal(t, []string{"English", "Spanish"}, content.Languages)
}

func TestExtract_RawTextPreserved(t *testing.T) {
	content := Extract(sampleResume)
	assert.Equal(t, sampleResume, content.RawText)
}

func TestExtract_HeadingLineIsNotContent(t *testing.T) {
	content := Extract("Skills\nPython")

	assert.Equal(t, []string{"Python"}, content.Skills)
}

func TestExtract_OpenItemFlushedAtEndOfInput(t *testing.T) {
	content := Extract("Experience\nEngineer at Acme\nDid things.")

	require.Len(t, content.Experience, 1)
	assert.Equal(t, "Engineer at Acme", content.Experience[0].Title)
	assert.Equal(t, "Did things.", content.Experience[0].Description)
}

func TestExtract_ExperienceLineBeforeAnyTitleIsDropped(t *testing.T) {
	content := Extract("Experience\norphan description line\nEngineer at Acme")

	require.Len(t, content.Experience, 1)
	assert.Equal(t, "Engineer at Acme", content.Experience[0].Title)
	assert.Empty(t, content.Experience[0].Description)
}

func TestExtract_PersonalInfoDoesNotConsumeLine(t *testing.T) {
	content := Extract("Skills\njane@example.com")

	assert.Equal(t, "jane@example.com", content.PersonalInfo.Email)
	assert.Equal(t, []string{"jane@example.com"}, content.Skills)
}

func TestExtract_EmptyInput(t *testing.T) {
	content := Extract("")

	assert.NotNil(t, content.Experience)
	assert.NotNil(t, content.Education)
	assert.NotNil(t, content.Skills)
	assert.NotNil(t, content.Certifications)
	assert.NotNil(t, content.Projects)
	assert.NotNil(t, content.Languages)
	assert.Empty(t, content.Summary)
}

func TestExtract_Deterministic(t *testing.T) {
	first := Extract(sampleResume)
	second := Extract(sampleResume)
	assert.Equal(t, first, second)
}

func TestParser_UnsupportedFormat(t *testing.T) {
	parser := NewParser()

	_, err := parser.Parse([]byte("data"), ".odt")

	var formatErr *UnsupportedFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, ".odt", formatErr.Ext)
}

func TestParser_PlainText(t *testing.T) {
	parser := NewParser()

	content, err := parser.Parse([]byte("Skills\nGo, SQL"), ".txt")

	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, content.Skills)
}

func TestParser_RegisteredExtractor(t *testing.T) {
	parser := NewParser()
	parser.Register(".pdf", TextExtractorFunc(func(_ []byte) (string, error) {
		return "Skills\nPython", nil
	}))

	content, err := parser.Parse([]byte{0x25, 0x50, 0x44, 0x46}, ".PDF")

	require.NoError(t, err)
	assert.Equal(t, []string{"Python"}, content.Skills)
}

func TestParser_ExtractorFailure(t *testing.T) {
	parser := NewParser()
	parser.Register(".docx", TextExtractorFunc(func(_ []byte) (string, error) {
		return "", errors.New("corrupt archive")
	}))

	_, err := parser.Parse([]byte("junk"), ".docx")

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
}
