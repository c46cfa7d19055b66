// Package jobdesc turns raw scraped job-posting content into a structured,
// normalized job description via pattern-based section extraction.
package jobdesc

// RawJobContent is the transient output of the scraper collaborator. It is
// consumed once by Normalize and archived as JSON alongside the result.
type RawJobContent struct {
	Title           string            `json:"title"`
	Company         string            `json:"company"`
	Location        string            `json:"location,omitempty"`
	DescriptionHTML string            `json:"description"`
	ContentFallback string            `json:"content"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

// NormalizedJobDescription is the canonical structured job record. List fields
// are never nil: absence means an empty list. Optional scalar fields are nil
// when no pattern matched.
type NormalizedJobDescription struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         *string  `json:"location"`
	Description      string   `json:"description"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	Benefits         []string `json:"benefits"`
	SalaryRange      *string  `json:"salary_range"`
	EmploymentType   *string  `json:"employment_type"`
	ExperienceLevel  *string  `json:"experience_level"`
	Skills           []string `json:"skills"`
	Education        *string  `json:"education"`
	Industry         *string  `json:"industry"`
	Department       *string  `json:"department"`
	RawContent       string   `json:"raw_content"`

	// Keywords is an optional pre-normalized keyword list consumed by the
	// tailoring engine. The normalizer itself does not populate it.
	Keywords []string `json:"keywords,omitempty"`
}
