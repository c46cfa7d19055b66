package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean_CollapsesWhitespace(t *testing.T) {
	input := "Senior   Software\n\nEngineer\t(Remote)"
	result := Clean(input)

	assert.Equal(t, "Senior Software Engineer (Remote)", result)
}

func TestClean_TrimsEnds(t *testing.T) {
	result := Clean("   Acme Corp   ")
	assert.Equal(t, "Acme Corp", result)
}

func TestClean_StripsZeroWidthCharacters(t *testing.T) {
	input := "Acme\u200bCorp\u200f"
	result := Clean(input)

	assert.Equal(t, "AcmeCorp", result)
}

func TestClean_EmptyInput(t *testing.T) {
	assert.Empty(t, Clean(""))
}

func TestClean_OnlyWhitespace(t *testing.T) {
	assert.Empty(t, Clean("  \n\t  "))
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"   \n  ",
		"plain text",
		"a \u200b b",
		"Multi\n\nline\t\ttext  with   runs",
		"\u200bleading zero width",
	}

	for _, input := range inputs {
		once := Clean(input)
		twice := Clean(once)
		assert.Equal(t, once, twice, "Clean not idempotent for %q", input)
	}
}

func TestHTMLToText_StripsScriptAndStyle(t *testing.T) {
	html := "<script>alert(1)</script><style>body { color: red }</style><p>Hello</p>"
	result := HTMLToText(html)

	assert.Contains(t, result, "Hello")
	assert.NotContains(t, result, "alert")
	assert.NotContains(t, result, "color")
}

func TestHTMLToText_DocumentOrder(t *testing.T) {
	html := "<div><h1>Title</h1><p>First</p><p>Second</p></div>"
	result := HTMLToText(html)

	assert.True(t, strings.Index(result, "Title") < strings.Index(result, "First"))
	assert.True(t, strings.Index(result, "First") < strings.Index(result, "Second"))
}

func TestHTMLToText_PlainTextPassesThrough(t *testing.T) {
	result := HTMLToText("just plain   text")
	assert.Equal(t, "just plain text", result)
}

func TestHTMLToText_EmptyInput(t *testing.T) {
	assert.Empty(t, HTMLToText(""))
}

func TestHTMLToText_NestedMarkup(t *testing.T) {
	html := `<ul><li>5 years <b>Python</b></li><li>Bachelor's degree</li></ul>`
	result := HTMLToText(html)

	assert.Contains(t, result, "5 years Python")
	assert.Contains(t, result, "Bachelor's degree")
}
