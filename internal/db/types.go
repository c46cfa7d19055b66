package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the processing lifecycle state of a record.
type Status string

// Lifecycle states. Records start pending, move to processing when a worker
// picks them up, and end completed or failed.
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether the status is an end state.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// step. Reprocessing a terminal record goes back through processing.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessing || next == StatusFailed
	case StatusProcessing:
		return next == StatusCompleted || next == StatusFailed
	case StatusCompleted, StatusFailed:
		return next == StatusProcessing
	}
	return false
}

// checkTransition guards the lifecycle before a status write.
func checkTransition(from, to Status) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("invalid status transition from %s to %s", from, to)
	}
	return nil
}

// Job is a stored job posting and its normalization result.
type Job struct {
	ID           uuid.UUID       `json:"id"`
	URL          string          `json:"url"`
	Status       Status          `json:"status"`
	ErrorMessage *string         `json:"error_message"`
	Normalized   json.RawMessage `json:"normalized,omitempty"`
	RawContent   string          `json:"-"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Resume is a stored resume upload and its extraction result.
type Resume struct {
	ID           uuid.UUID       `json:"id"`
	Filename     string          `json:"filename"`
	BlobKey      string          `json:"blob_key"`
	Status       Status          `json:"status"`
	ErrorMessage *string         `json:"error_message"`
	Parsed       json.RawMessage `json:"parsed,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// JobApplication joins a job to a resume and holds the tailored outputs.
type JobApplication struct {
	ID           uuid.UUID       `json:"id"`
	JobID        uuid.UUID       `json:"job_id"`
	ResumeID     uuid.UUID       `json:"resume_id"`
	Status       Status          `json:"status"`
	ErrorMessage *string         `json:"error_message"`
	Tailored     json.RawMessage `json:"tailored,omitempty"`
	CoverLetter  json.RawMessage `json:"cover_letter,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
