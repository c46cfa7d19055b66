// Package textutil provides text cleaning and HTML-to-text conversion used by
// the job description and resume pipelines.
package textutil

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	zeroWidthRe  = regexp.MustCompile(`[\x{200B}-\x{200F}]`)
)

// Clean collapses runs of whitespace (including newlines) to single spaces,
// trims leading/trailing whitespace, and strips zero-width control characters.
// It is a total function: any input yields a valid (possibly empty) string.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	// Zero-width characters are stripped first so that collapsing whitespace
	// around them cannot leave double spaces behind.
	text = zeroWidthRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	return text
}

// HTMLToText parses HTML, drops <script> and <style> subtrees entirely, and
// returns the remaining text nodes in document order, cleaned via Clean.
// If the HTML cannot be parsed it returns the input unchanged; callers are
// expected to log a warning for that degradation.
func HTMLToText(html string) string {
	if html == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	doc.Find("script, style").Remove()

	return Clean(doc.Text())
}
