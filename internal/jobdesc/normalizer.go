package jobdesc

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"

	"github.com/laudatorai/laudator/internal/textutil"
)

// Normalize converts raw scraped content into a structured job description.
// It never fails: if extraction goes wrong it degrades to a minimal record
// carrying only the raw title, company, and description.
func Normalize(raw RawJobContent) (result NormalizedJobDescription) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[jobdesc] normalization degraded to minimal output: %v", r)
			result = minimal(raw)
		}
	}()

	title := textutil.Clean(raw.Title)
	company := textutil.Clean(raw.Company)
	location := textutil.Clean(raw.Location)

	// Prefer the scraped description; fall back to the full page content.
	description := textutil.HTMLToText(raw.DescriptionHTML)
	if description == "" {
		description = textutil.HTMLToText(raw.ContentFallback)
	}

	rawJSON, err := json.Marshal(raw)
	if err != nil {
		log.Printf("[jobdesc] failed to serialize raw content for audit: %v", err)
	}

	result = NormalizedJobDescription{
		Title:            title,
		Company:          company,
		Description:      description,
		Requirements:     extractRequirements(description),
		Responsibilities: extractSections(description, responsibilityPatterns),
		Benefits:         extractSections(description, benefitPatterns),
		SalaryRange:      firstMatch(description, salaryPatterns),
		EmploymentType:   firstMatch(description, employmentTypePatterns),
		ExperienceLevel:  firstMatch(description, experienceLevelPatterns),
		Skills:           extractSkills(description),
		Education:        firstMatch(description, educationPatterns),
		Industry:         firstMatch(description, industryPatterns),
		Department:       firstMatch(description, departmentPatterns),
		RawContent:       string(rawJSON),
	}
	if location != "" {
		result.Location = &location
	}

	return result
}

// minimal is the degraded result used when normalization fails partway.
func minimal(raw RawJobContent) NormalizedJobDescription {
	return NormalizedJobDescription{
		Title:            raw.Title,
		Company:          raw.Company,
		Description:      raw.DescriptionHTML,
		Requirements:     []string{},
		Responsibilities: []string{},
		Benefits:         []string{},
		Skills:           []string{},
	}
}

// extractSections applies the header patterns in priority order and returns
// the deduplicated bullet items of the first pattern with a non-empty capture.
func extractSections(text string, patterns []*regexp.Regexp) []string {
	for _, pattern := range patterns {
		items := make([]string, 0)
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			items = append(items, splitBulletPoints(match[1])...)
		}
		if len(items) > 0 {
			return dedupe(items)
		}
	}
	return []string{}
}

// extractRequirements uses the header patterns first and falls back to
// scanning lines for requirement-indicative keywords.
func extractRequirements(text string) []string {
	requirements := extractSections(text, requirementPatterns)
	if len(requirements) > 0 {
		return requirements
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		for _, keyword := range requirementKeywords {
			if strings.Contains(lower, keyword) {
				requirements = append(requirements, line)
				break
			}
		}
	}

	return dedupe(requirements)
}

// firstMatch returns the first match of the first matching pattern, using the
// capture group when the pattern defines a non-empty one. nil means absent.
func firstMatch(text string, patterns []*regexp.Regexp) *string {
	for _, pattern := range patterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		value := match[0]
		if len(match) > 1 && match[1] != "" {
			value = match[1]
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		return &value
	}
	return nil
}

// extractSkills matches the description against the fixed skill vocabulary.
// A hit contributes the vocabulary term verbatim.
func extractSkills(text string) []string {
	skills := make([]string, 0)
	lower := strings.ToLower(text)
	for _, skill := range skillVocabulary {
		if strings.Contains(lower, strings.ToLower(skill)) {
			skills = append(skills, skill)
		}
	}
	return skills
}

// splitBulletPoints splits a captured section block into items. Bullet glyphs
// take precedence, then numbered-list markers, then plain newlines; the first
// method that produces more than one piece wins, otherwise the whole block is
// a single item.
func splitBulletPoints(block string) []string {
	if pieces := bulletGlyphRe.Split(block, -1); len(pieces) > 1 {
		return trimNonEmpty(pieces)
	}
	if pieces := numberedItemRe.Split(block, -1); len(pieces) > 1 {
		return trimNonEmpty(pieces)
	}
	return trimNonEmpty(strings.Split(block, "\n"))
}

func trimNonEmpty(pieces []string) []string {
	out := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			out = append(out, piece)
		}
	}
	return out
}

// dedupe removes duplicates preserving first occurrence; order of these list
// fields is not significant but deterministic output keeps tailoring pure.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
