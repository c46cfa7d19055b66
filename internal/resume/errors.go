package resume

import "fmt"

// UnsupportedFormatError is returned when a resume file has an extension the
// parser cannot read at all. This is the only hard error the parsing entry
// point surfaces; everything else degrades to partial output.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s", e.Ext)
}

// ExtractionError wraps a failure from a format-specific text extractor.
type ExtractionError struct {
	Ext     string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("text extraction failed for %s: %s: %v", e.Ext, e.Message, e.Cause)
	}
	return fmt.Sprintf("text extraction failed for %s: %s", e.Ext, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
