// Package resume segments plain resume text into structured content and
// handles the resume-file parsing entry point.
package resume

// PersonalInfo holds contact fields picked out of the resume text. All fields
// are optional.
type PersonalInfo struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// ExperienceItem is a single work-history entry in document order.
type ExperienceItem struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationItem is a single education entry. The extractor currently fills
// only Institution; Degree and Year are part of the wire shape for callers
// that enrich records downstream.
type EducationItem struct {
	Institution string `json:"institution,omitempty"`
	Degree      string `json:"degree,omitempty"`
	Year        string `json:"year,omitempty"`
}

// ProjectItem is a single project entry.
type ProjectItem struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// ParsedResumeContent is the canonical structured resume record. List fields
// are never nil; Experience order reflects document order. RawText carries the
// full extracted text for traceability. TailoredResumeContent shares this
// shape: tailoring returns a deep copy with skills reordered and descriptions
// augmented.
type ParsedResumeContent struct {
	PersonalInfo   PersonalInfo     `json:"personal_info"`
	Summary        string           `json:"summary"`
	Experience     []ExperienceItem `json:"experience"`
	Education      []EducationItem  `json:"education"`
	Skills         []string         `json:"skills"`
	Certifications []string         `json:"certifications"`
	Projects       []ProjectItem    `json:"projects"`
	Languages      []string         `json:"languages"`
	RawText        string           `json:"raw_text"`
}

// Clone returns a deep copy so that tailoring never aliases the source record.
// Copied list fields stay non-nil so the wire shape keeps emitting [].
func (c *ParsedResumeContent) Clone() *ParsedResumeContent {
	out := *c
	out.Experience = copySlice(c.Experience)
	out.Education = copySlice(c.Education)
	out.Skills = copySlice(c.Skills)
	out.Certifications = copySlice(c.Certifications)
	out.Projects = copySlice(c.Projects)
	out.Languages = copySlice(c.Languages)
	return &out
}

func copySlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
