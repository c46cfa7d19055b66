package jobdesc

import "regexp"

// Section-header patterns capture the text following a labeled header up to
// the next blank line or the next capitalized header line. Each list is in
// priority order: the first pattern yielding a non-empty capture wins and
// later patterns are not tried for that field.
var (
	requirementPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)(?:requirements?|qualifications?|must have|should have|need to have):\s*(.*?)(?:\n\n|\n[A-Z]|$)`),
		regexp.MustCompile(`(?is)(?:minimum|required|preferred)\s+(?:qualifications?|requirements?|experience):\s*(.*?)(?:\n\n|\n[A-Z]|$)`),
		regexp.MustCompile(`(?is)(?:experience|skills?|knowledge)\s+(?:required|needed|preferred):\s*(.*?)(?:\n\n|\n[A-Z]|$)`),
	}

	responsibilityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)(?:responsibilities?|duties?|what you'll do|key responsibilities?):\s*(.*?)(?:\n\n|\n[A-Z]|$)`),
		regexp.MustCompile(`(?is)(?:role|position|job)\s+(?:responsibilities?|duties?):\s*(.*?)(?:\n\n|\n[A-Z]|$)`),
	}

	benefitPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)(?:benefits?|perks?|what we offer|compensation):\s*(.*?)(?:\n\n|\n[A-Z]|$)`),
		regexp.MustCompile(`(?is)(?:health|dental|vision|insurance|401k|pto|vacation):\s*(.*?)(?:\n\n|\n[A-Z]|$)`),
	}
)

// Scalar-field patterns: the first match in the text wins, absence means the
// field stays unset. A pattern with a capture group contributes its group,
// otherwise the whole match is used.
var (
	salaryPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\$[\d,]+(?:\s*-\s*\$[\d,]+)?(?:\s*(?:per\s+)?(?:year|month|hour|annually|monthly|hourly))?`),
		regexp.MustCompile(`(?i)(?:salary|compensation|pay)\s*(?:range|package)?\s*:\s*\$[\d,]+(?:\s*-\s*\$[\d,]+)?`),
		regexp.MustCompile(`(?i)(?:competitive|attractive|excellent)\s+(?:salary|compensation|pay)`),
	}

	employmentTypePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:full\s*-?\s*time|part\s*-?\s*time|contract|temporary|permanent|remote|hybrid|on\s*-?\s*site)`),
		regexp.MustCompile(`(?i)(?:employment\s+type|job\s+type|work\s+arrangement):\s*(.*?)(?:\n|$)`),
	}

	experienceLevelPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:entry\s*-?\s*level|junior|mid\s*-?\s*level|senior|lead|principal|executive)`),
		regexp.MustCompile(`(?i)(?:experience\s+level|seniority):\s*(.*?)(?:\n|$)`),
	}

	educationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:bachelor's|master's|phd|degree|diploma|certification)\s+(?:in|of)?\s+([^.\n]+)`),
		regexp.MustCompile(`(?i)(?:education|degree|qualification):\s*([^.\n]+)`),
	}

	industryPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:industry|sector):\s*([^.\n]+)`),
		regexp.MustCompile(`(?i)(?:technology|healthcare|finance|education|retail|manufacturing|consulting)`),
	}

	departmentPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:department|team|division):\s*([^.\n]+)`),
		regexp.MustCompile(`(?i)(?:engineering|marketing|sales|hr|finance|operations|product|design)`),
	}
)

// Bullet-splitting patterns, tried in precedence order: bullet glyphs, then
// numbered-list markers, then plain newlines.
var (
	bulletGlyphRe  = regexp.MustCompile(`[•·▪▫‣⁃]\s*`)
	numberedItemRe = regexp.MustCompile(`\d+\.\s*`)
)

// requirementKeywords drive the fallback line scan when no requirement header
// pattern matches.
var requirementKeywords = []string{"years", "experience", "degree", "certification", "proficiency"}

// skillVocabulary is the fixed vocabulary matched case-insensitively as
// substrings of the description. A hit contributes the vocabulary term
// verbatim, not the text as found.
var skillVocabulary = []string{
	"Python", "JavaScript", "Java", "C++", "C#", "PHP", "Ruby", "Go", "Rust",
	"React", "Angular", "Vue", "Node.js", "Django", "Flask", "Spring",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Jenkins", "Git",
	"SQL", "MongoDB", "Redis", "Elasticsearch", "Kafka", "RabbitMQ",
	"Machine Learning", "AI", "Data Science", "Analytics", "Statistics",
	"Agile", "Scrum", "Kanban", "Jira", "Confluence", "Slack",
	"Excel", "PowerPoint", "Word", "Photoshop", "Illustrator",
	"Salesforce", "HubSpot", "Marketo", "Google Analytics",
}
