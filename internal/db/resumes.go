package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const resumeColumns = `id, filename, blob_key, status, error_message, parsed, created_at, updated_at`

// CreateResume inserts a new resume record pointing at a stored blob.
func (db *DB) CreateResume(ctx context.Context, filename, blobKey string) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (filename, blob_key, status) VALUES ($1, $2, $3)
		 RETURNING `+resumeColumns,
		filename, blobKey, StatusPending,
	).Scan(&r.ID, &r.Filename, &r.BlobKey, &r.Status, &r.ErrorMessage, &r.Parsed,
		&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return &r, nil
}

// GetResume retrieves a resume by ID. Returns (nil, nil) when no row exists.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.Filename, &r.BlobKey, &r.Status, &r.ErrorMessage, &r.Parsed,
		&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &r, nil
}

// SetResumeStatus moves a resume to the given status, clearing any error.
// Moves that are not legal lifecycle steps are rejected.
func (db *DB) SetResumeStatus(ctx context.Context, id uuid.UUID, status Status) error {
	var current Status
	if err := db.pool.QueryRow(ctx, `SELECT status FROM resumes WHERE id = $1`, id).Scan(&current); err != nil {
		return fmt.Errorf("failed to set resume status: %w", err)
	}
	if err := checkTransition(current, status); err != nil {
		return err
	}

	_, err := db.pool.Exec(ctx,
		`UPDATE resumes SET status = $1, error_message = NULL, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set resume status: %w", err)
	}
	return nil
}

// SaveParsedResume stores the extraction result and marks the resume
// completed. Reparsing overwrites the previous result.
func (db *DB) SaveParsedResume(ctx context.Context, id uuid.UUID, parsed any) error {
	payload, err := json.Marshal(parsed)
	if err != nil {
		return fmt.Errorf("failed to marshal parsed resume: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE resumes SET parsed = $1, status = $2, error_message = NULL, updated_at = NOW()
		 WHERE id = $3`,
		payload, StatusCompleted, id,
	)
	if err != nil {
		return fmt.Errorf("failed to save parsed resume: %w", err)
	}
	return nil
}

// MarkResumeFailed records an extraction failure.
func (db *DB) MarkResumeFailed(ctx context.Context, id uuid.UUID, message string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE resumes SET status = $1, error_message = $2, updated_at = NOW() WHERE id = $3`,
		StatusFailed, message, id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark resume failed: %w", err)
	}
	return nil
}
