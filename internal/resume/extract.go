package resume

import (
	"strings"
	"unicode"
)

type section int

const (
	sectionNone section = iota
	sectionSummary
	sectionExperience
	sectionEducation
	sectionSkills
	sectionCertifications
	sectionProjects
	sectionLanguages
)

// sectionHeadings maps heading keywords to sections, in detection priority
// order. A case-insensitive substring hit makes the line a heading; the
// heading line itself is never content.
var sectionHeadings = []struct {
	section  section
	keywords []string
}{
	{sectionExperience, []string{"experience", "work history", "employment"}},
	{sectionEducation, []string{"education", "academic", "degree"}},
	{sectionSkills, []string{"skills", "technical skills", "competencies"}},
	{sectionCertifications, []string{"certifications", "certificates"}},
	{sectionProjects, []string{"projects", "portfolio"}},
	{sectionLanguages, []string{"languages"}},
	{sectionSummary, []string{"summary", "objective", "profile"}},
}

var addressKeywords = []string{"street", "avenue", "road", "drive", "lane"}

// Extract segments plain resume text into structured content. It is a total
// function over any input; unrecognized lines are simply not accumulated.
func Extract(text string) *ParsedResumeContent {
	ex := &extractor{
		content: ParsedResumeContent{
			Experience:     []ExperienceItem{},
			Education:      []EducationItem{},
			Skills:         []string{},
			Certifications: []string{},
			Projects:       []ProjectItem{},
			Languages:      []string{},
			RawText:        text,
		},
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ex.processLine(line)
	}

	// Flush the open accumulator at end of input.
	ex.flushExperience()
	ex.content.Summary = strings.Join(ex.summary, " ")

	return &ex.content
}

// extractor is a single-pass line-oriented state machine. The open experience
// item is an exclusively-owned accumulator that is moved into the output list
// on flush.
type extractor struct {
	content ParsedResumeContent
	section section
	open    *ExperienceItem
	summary []string
}

func (ex *extractor) processLine(line string) {
	lower := strings.ToLower(line)

	if next, ok := matchHeading(lower); ok {
		ex.flushExperience()
		ex.section = next
		return
	}

	// Personal-info checks run regardless of section state and do not consume
	// the line: it still accumulates into the current section below.
	ex.capturePersonalInfo(line, lower)

	switch ex.section {
	case sectionSummary:
		ex.summary = append(ex.summary, line)
	case sectionSkills:
		ex.content.Skills = append(ex.content.Skills, splitCommaList(line)...)
	case sectionExperience:
		ex.accumulateExperience(line)
	case sectionEducation:
		// One item per line by design: continuation lines (a degree under an
		// institution) become separate entries. See the education note in
		// DESIGN.md before changing this.
		ex.content.Education = append(ex.content.Education, EducationItem{Institution: line})
	case sectionCertifications:
		ex.content.Certifications = append(ex.content.Certifications, line)
	case sectionProjects:
		ex.content.Projects = append(ex.content.Projects, ProjectItem{Title: line})
	case sectionLanguages:
		ex.content.Languages = append(ex.content.Languages, splitCommaList(line)...)
	}
}

// accumulateExperience opens a new item on title-like lines and appends other
// lines to the open item's description. Lines outside any open item are
// dropped.
func (ex *extractor) accumulateExperience(line string) {
	if isTitleLine(line) {
		ex.flushExperience()
		ex.open = &ExperienceItem{Title: line}
		return
	}
	if ex.open == nil {
		return
	}
	if ex.open.Description == "" {
		ex.open.Description = line
	} else {
		ex.open.Description += " " + line
	}
}

func (ex *extractor) flushExperience() {
	if ex.open != nil {
		ex.content.Experience = append(ex.content.Experience, *ex.open)
		ex.open = nil
	}
}

func (ex *extractor) capturePersonalInfo(line, lower string) {
	switch {
	case strings.Contains(line, "@") && strings.Contains(line, "."):
		ex.content.PersonalInfo.Email = line
	case digitCount(line) >= 10:
		ex.content.PersonalInfo.Phone = line
	case containsAny(lower, addressKeywords):
		ex.content.PersonalInfo.Address = line
	}
}

func matchHeading(lower string) (section, bool) {
	for _, heading := range sectionHeadings {
		if containsAny(lower, heading.keywords) {
			return heading.section, true
		}
	}
	return sectionNone, false
}

// isTitleLine reports whether a line looks like a "Role - Company" or
// "Role at Company" experience title.
func isTitleLine(line string) bool {
	return strings.Contains(line, " - ") || strings.Contains(line, " at ")
}

func splitCommaList(line string) []string {
	parts := strings.Split(line, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

// digitCount counts digits in a line, ignoring separators and any other
// non-digit characters.
func digitCount(line string) int {
	count := 0
	for _, r := range line {
		if unicode.IsDigit(r) {
			count++
		}
	}
	return count
}
