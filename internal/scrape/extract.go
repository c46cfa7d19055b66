package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/laudatorai/laudator/internal/jobdesc"
	"github.com/laudatorai/laudator/internal/textutil"
)

// Selector tables are tried in order; the first non-empty hit wins. They cover
// the common job board markups (Greenhouse, Lever, LinkedIn) plus generic
// heading fallbacks.
var (
	titleSelectors = []string{
		"h1.job-title",
		".posting-headline h2",
		"[data-testid='job-title']",
		".app-title",
		"h1",
	}
	companySelectors = []string{
		".company-name",
		"[data-testid='company-name']",
		".posting-categories .sort-by-team",
		".employer",
	}
	locationSelectors = []string{
		".job-location",
		"[data-testid='job-location']",
		".posting-categories .sort-by-location",
		".location",
	}
	descriptionSelectors = []string{
		".job-description",
		"#job-description",
		"[data-testid='job-description']",
		".posting-content",
		"#content",
		"main",
		"article",
	}
)

// metaTags lists the meta tag names/properties captured into Metadata.
var metaTags = []string{"description", "og:title", "og:site_name", "og:description"}

// extractJobContent pulls raw job fields out of page HTML. It never fails: an
// unparseable page yields empty fields with the whole input as the content
// fallback.
func extractJobContent(html string) *jobdesc.RawJobContent {
	raw := &jobdesc.RawJobContent{Metadata: map[string]string{}}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		raw.ContentFallback = html
		return raw
	}

	raw.Title = firstText(doc, titleSelectors)
	raw.Company = firstText(doc, companySelectors)
	raw.Location = firstText(doc, locationSelectors)
	raw.DescriptionHTML = firstHTML(doc, descriptionSelectors)

	if raw.Company == "" {
		if siteName, ok := metaContent(doc, "og:site_name"); ok {
			raw.Company = siteName
		}
	}

	for _, name := range metaTags {
		if content, ok := metaContent(doc, name); ok {
			raw.Metadata[name] = content
		}
	}

	// Body text backstop for pages none of the description selectors match.
	if raw.DescriptionHTML == "" {
		raw.ContentFallback = bodyText(doc)
	}

	return raw
}

// firstText returns the cleaned text of the first selector that matches a
// non-empty element.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		selection := doc.Find(selector)
		if selection.Length() == 0 {
			continue
		}
		if text := textutil.Clean(selection.First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// firstHTML returns the inner HTML of the first matching non-empty element.
// The HTML is kept as-is; the normalizer owns text conversion.
func firstHTML(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		selection := doc.Find(selector)
		if selection.Length() == 0 {
			continue
		}
		html, err := selection.First().Html()
		if err != nil || strings.TrimSpace(html) == "" {
			continue
		}
		return html
	}
	return ""
}

func metaContent(doc *goquery.Document, name string) (string, bool) {
	var content string
	doc.Find("meta").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		attr, _ := sel.Attr("name")
		if attr == "" {
			attr, _ = sel.Attr("property")
		}
		if attr != name {
			return true
		}
		content, _ = sel.Attr("content")
		return false
	})
	if strings.TrimSpace(content) == "" {
		return "", false
	}
	return content, true
}

func bodyText(doc *goquery.Document) string {
	body := doc.Clone()
	body.Find("nav, footer, header, script, style, noscript").Remove()
	return textutil.Clean(body.Find("body").Text())
}
