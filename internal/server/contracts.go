package server

import (
	"encoding/json"
	"fmt"

	"github.com/laudatorai/laudator/internal/schemas"
)

// marshalValidatedJob marshals a normalization result and checks it against
// the normalized job contract before it is persisted.
func marshalValidatedJob(normalized any) (json.RawMessage, error) {
	payload, err := json.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal normalized job: %w", err)
	}
	if err := schemas.ValidateNormalizedJob(string(payload)); err != nil {
		return nil, fmt.Errorf("normalized job violates contract: %w", err)
	}
	return payload, nil
}

// marshalValidatedResume marshals extracted resume content and checks it
// against the parsed resume contract before it is persisted. Tailored content
// shares the same contract.
func marshalValidatedResume(parsed any) (json.RawMessage, error) {
	payload, err := json.Marshal(parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal parsed resume: %w", err)
	}
	if err := schemas.ValidateParsedResume(string(payload)); err != nil {
		return nil, fmt.Errorf("parsed resume violates contract: %w", err)
	}
	return payload, nil
}
