// Package render turns parsed and tailored content into HTML previews. The
// template registry is built once at startup and is immutable afterwards, so
// renderers can share it freely across goroutines.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/laudatorai/laudator/internal/coverletter"
	"github.com/laudatorai/laudator/internal/resume"
)

//go:embed templates/*.html.tmpl
var templateFiles embed.FS

// Template names served by the registry.
const (
	TemplateResume      = "resume"
	TemplateCoverLetter = "coverletter"
)

// TemplateError reports a failure loading or parsing a template.
type TemplateError struct {
	Name    string
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("template %s: %s", e.Name, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// Registry holds the parsed templates. Construct it once with NewRegistry;
// it exposes no mutation.
type Registry struct {
	templates map[string]*template.Template
}

// NewRegistry parses all embedded templates.
func NewRegistry() (*Registry, error) {
	funcs := template.FuncMap{
		"join": strings.Join,
	}

	names := map[string]string{
		TemplateResume:      "templates/resume.html.tmpl",
		TemplateCoverLetter: "templates/coverletter.html.tmpl",
	}

	templates := make(map[string]*template.Template, len(names))
	for name, path := range names {
		content, err := templateFiles.ReadFile(path)
		if err != nil {
			return nil, &TemplateError{Name: name, Message: "failed to read template", Cause: err}
		}
		tmpl, err := template.New(name).Funcs(funcs).Parse(string(content))
		if err != nil {
			return nil, &TemplateError{Name: name, Message: "failed to parse template", Cause: err}
		}
		templates[name] = tmpl
	}

	return &Registry{templates: templates}, nil
}

// RenderResume produces the HTML preview for resume content, parsed or
// tailored.
func (r *Registry) RenderResume(content *resume.ParsedResumeContent) (string, error) {
	return r.execute(TemplateResume, content)
}

// coverLetterData is the template context for cover letters.
type coverLetterData struct {
	Letter       *coverletter.Letter
	ClosingLines []string
	Name         string
}

// RenderCoverLetter produces the HTML preview for a cover letter.
func (r *Registry) RenderCoverLetter(letter *coverletter.Letter, name string) (string, error) {
	return r.execute(TemplateCoverLetter, coverLetterData{
		Letter:       letter,
		ClosingLines: strings.Split(letter.Closing, "\n"),
		Name:         name,
	})
}

func (r *Registry) execute(name string, data any) (string, error) {
	tmpl, ok := r.templates[name]
	if !ok {
		return "", &TemplateError{Name: name, Message: "not registered"}
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", &TemplateError{Name: name, Message: "failed to execute template", Cause: err}
	}
	return sb.String(), nil
}
