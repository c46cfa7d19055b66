package jobdesc

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_BasicFields(t *testing.T) {
	raw := RawJobContent{
		Title:           "  Senior   Backend Engineer ",
		Company:         "Acme\nCorp",
		Location:        " San Francisco, CA ",
		DescriptionHTML: "<p>Build services in Go and Python.</p>",
	}

	result := Normalize(raw)

	assert.Equal(t, "Senior Backend Engineer", result.Title)
	assert.Equal(t, "Acme Corp", result.Company)
	require.NotNil(t, result.Location)
	assert.Equal(t, "San Francisco, CA", *result.Location)
	assert.Equal(t, "Build services in Go and Python.", result.Description)
}

func TestNormalize_FallsBackToPageContent(t *testing.T) {
	raw := RawJobContent{
		Title:           "Engineer",
		Company:         "Acme",
		DescriptionHTML: "",
		ContentFallback: "<html><body><p>Full page text here.</p></body></html>",
	}

	result := Normalize(raw)

	assert.Equal(t, "Full page text here.", result.Description)
}

func TestNormalize_ArchivesRawContent(t *testing.T) {
	raw := RawJobContent{
		Title:    "Engineer",
		Company:  "Acme",
		Metadata: map[string]string{"og:title": "Engineer at Acme"},
	}

	result := Normalize(raw)

	var archived RawJobContent
	require.NoError(t, json.Unmarshal([]byte(result.RawContent), &archived))
	assert.Equal(t, raw.Title, archived.Title)
	assert.Equal(t, raw.Metadata, archived.Metadata)
}

func TestNormalize_MissingLocationIsNil(t *testing.T) {
	result := Normalize(RawJobContent{Title: "Engineer", Company: "Acme"})
	assert.Nil(t, result.Location)
}

func TestNormalize_SalaryRange(t *testing.T) {
	raw := RawJobContent{
		DescriptionHTML: "<p>Compensation: $120,000 - $150,000 per year</p>",
	}

	result := Normalize(raw)

	require.NotNil(t, result.SalaryRange)
	assert.Equal(t, "$120,000 - $150,000 per year", *result.SalaryRange)
}

func TestNormalize_EmploymentTypeAndLevel(t *testing.T) {
	raw := RawJobContent{
		DescriptionHTML: "<p>This is a full-time remote role for a senior engineer.</p>",
	}

	result := Normalize(raw)

	require.NotNil(t, result.EmploymentType)
	assert.Equal(t, "full-time", strings.ToLower(*result.EmploymentType))
	require.NotNil(t, result.ExperienceLevel)
	assert.Equal(t, "senior", strings.ToLower(*result.ExperienceLevel))
}

func TestNormalize_SkillsFromVocabulary(t *testing.T) {
	raw := RawJobContent{
		DescriptionHTML: "<p>We use PYTHON, react and kubernetes on AWS.</p>",
	}

	result := Normalize(raw)

	assert.Contains(t, result.Skills, "Python")
	assert.Contains(t, result.Skills, "React")
	assert.Contains(t, result.Skills, "Kubernetes")
	assert.Contains(t, result.Skills, "AWS")
	assert.NotContains(t, result.Skills, "Rust")
}

func TestNormalize_Education(t *testing.T) {
	raw := RawJobContent{
		DescriptionHTML: "<p>A degree in Computer Science is expected</p>",
	}

	result := Normalize(raw)

	require.NotNil(t, result.Education)
	assert.Contains(t, *result.Education, "Computer Science")
}

func TestNormalize_NeverPanicsOnGarbage(t *testing.T) {
	inputs := []RawJobContent{
		{},
		{Title: "\x00\x01\x02", Company: "\xff\xfe", DescriptionHTML: string([]byte{0x89, 0x50, 0x4e, 0x47})},
		{DescriptionHTML: strings.Repeat("<<<>>>", 1000)},
		{ContentFallback: "   \n\n\t   "},
	}

	for _, raw := range inputs {
		result := Normalize(raw)
		assert.NotNil(t, result.Requirements)
		assert.NotNil(t, result.Responsibilities)
		assert.NotNil(t, result.Benefits)
		assert.NotNil(t, result.Skills)
	}
}

func TestNormalize_JSONShape(t *testing.T) {
	result := Normalize(RawJobContent{Title: "Engineer", Company: "Acme"})

	data, err := json.Marshal(result)
	require.NoError(t, err)

	body := string(data)
	assert.Contains(t, body, `"requirements":[]`)
	assert.Contains(t, body, `"skills":[]`)
	assert.Contains(t, body, `"salary_range":null`)
	assert.Contains(t, body, `"location":null`)
}

func TestExtractRequirements_BulletSection(t *testing.T) {
	text := "Requirements:\n• 5 years Python\n• Bachelor's degree\n\nBenefits:\nHealth insurance"

	requirements := extractRequirements(text)

	assert.ElementsMatch(t, []string{"5 years Python", "Bachelor's degree"}, requirements)
}

func TestExtractRequirements_NumberedSection(t *testing.T) {
	text := "Qualifications: 1. Go expertise 2. Cloud deployment experience\n\nOther"

	requirements := extractRequirements(text)

	assert.Contains(t, requirements, "Go expertise")
	assert.Contains(t, requirements, "Cloud deployment experience")
}

func TestExtractRequirements_KeywordFallback(t *testing.T) {
	text := "We are hiring.\n3+ years experience with distributed systems\nGreat team culture"

	requirements := extractRequirements(text)

	assert.Equal(t, []string{"3+ years experience with distributed systems"}, requirements)
}

func TestExtractRequirements_Deduplicates(t *testing.T) {
	text := "5 years experience required\n5 years experience required"

	requirements := extractRequirements(text)

	assert.Equal(t, []string{"5 years experience required"}, requirements)
}

func TestExtractSections_FirstNonEmptyPatternWins(t *testing.T) {
	// "Must have:" matches the first requirement pattern, "Skills required:"
	// only the third; once the first pattern captures, later ones are skipped.
	text := "Must have:\n• Go expertise\n\nSkills required:\n• Juggling\n\n"

	items := extractSections(text, requirementPatterns)

	assert.Contains(t, items, "Go expertise")
	assert.NotContains(t, items, "Juggling")
}

func TestExtractSections_CollectsAllMatchesOfWinningPattern(t *testing.T) {
	text := "Responsibilities:\n• Ship features\n\nDuties:\n• Review code\n\n"

	items := extractSections(text, responsibilityPatterns)

	assert.Contains(t, items, "Ship features")
	assert.Contains(t, items, "Review code")
}

func TestExtractSections_Benefits(t *testing.T) {
	text := "Benefits:\n• Health insurance\n• 401k matching\n\nNext"

	items := extractSections(text, benefitPatterns)

	assert.ElementsMatch(t, []string{"Health insurance", "401k matching"}, items)
}

func TestSplitBulletPoints_WholeBlockWhenNoMarkers(t *testing.T) {
	items := splitBulletPoints("just one requirement with no markers")
	assert.Equal(t, []string{"just one requirement with no markers"}, items)
}

func TestFirstMatch_AbsentIsNil(t *testing.T) {
	assert.Nil(t, firstMatch("no money mentioned here", salaryPatterns))
}
