package resume

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TextExtractor produces plain text from resume file bytes of one format.
// PDF and DOCX extraction are external collaborators registered by the
// surrounding system; the parser itself only knows plain text.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// TextExtractorFunc adapts a function to the TextExtractor interface.
type TextExtractorFunc func(data []byte) (string, error)

// ExtractText calls the wrapped function.
func (f TextExtractorFunc) ExtractText(data []byte) (string, error) {
	return f(data)
}

// Parser dispatches resume files to a format-specific text extractor by
// extension and segments the result into structured content.
type Parser struct {
	extractors map[string]TextExtractor
}

// NewParser returns a parser that handles .txt natively. PDF/DOCX extractors
// are registered by the caller.
func NewParser() *Parser {
	p := &Parser{extractors: make(map[string]TextExtractor)}
	p.Register(".txt", TextExtractorFunc(func(data []byte) (string, error) {
		return string(data), nil
	}))
	return p
}

// Register installs an extractor for a file extension (".pdf", ".docx").
func (p *Parser) Register(ext string, extractor TextExtractor) {
	p.extractors[strings.ToLower(ext)] = extractor
}

// Supports reports whether the parser can read files with the extension.
func (p *Parser) Supports(ext string) bool {
	_, ok := p.extractors[strings.ToLower(ext)]
	return ok
}

// Parse extracts structured content from resume file bytes. The extension
// selects the text extractor; an unknown extension yields
// *UnsupportedFormatError, the one hard error of this entry point.
func (p *Parser) Parse(data []byte, ext string) (*ParsedResumeContent, error) {
	ext = strings.ToLower(ext)
	extractor, ok := p.extractors[ext]
	if !ok {
		return nil, &UnsupportedFormatError{Ext: ext}
	}

	text, err := extractor.ExtractText(data)
	if err != nil {
		return nil, &ExtractionError{Ext: ext, Message: "extractor failed", Cause: err}
	}

	return Extract(text), nil
}

// ParseFile reads and parses a resume file from disk.
func (p *Parser) ParseFile(path string) (*ParsedResumeContent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}
	return p.Parse(data, filepath.Ext(path))
}
