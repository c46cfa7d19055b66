package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const applicationColumns = `id, job_id, resume_id, status, error_message, tailored, cover_letter, created_at, updated_at`

// CreateApplication inserts a new application joining a job and a resume.
func (db *DB) CreateApplication(ctx context.Context, jobID, resumeID uuid.UUID) (*JobApplication, error) {
	var a JobApplication
	err := db.pool.QueryRow(ctx,
		`INSERT INTO job_applications (job_id, resume_id, status) VALUES ($1, $2, $3)
		 RETURNING `+applicationColumns,
		jobID, resumeID, StatusPending,
	).Scan(&a.ID, &a.JobID, &a.ResumeID, &a.Status, &a.ErrorMessage, &a.Tailored,
		&a.CoverLetter, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return &a, nil
}

// GetApplication retrieves an application by ID. Returns (nil, nil) when no
// row exists.
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*JobApplication, error) {
	var a JobApplication
	err := db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM job_applications WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.JobID, &a.ResumeID, &a.Status, &a.ErrorMessage, &a.Tailored,
		&a.CoverLetter, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &a, nil
}

// SetApplicationStatus moves an application to the given status. Moves that
// are not legal lifecycle steps are rejected.
func (db *DB) SetApplicationStatus(ctx context.Context, id uuid.UUID, status Status) error {
	var current Status
	if err := db.pool.QueryRow(ctx, `SELECT status FROM job_applications WHERE id = $1`, id).Scan(&current); err != nil {
		return fmt.Errorf("failed to set application status: %w", err)
	}
	if err := checkTransition(current, status); err != nil {
		return err
	}

	_, err := db.pool.Exec(ctx,
		`UPDATE job_applications SET status = $1, error_message = NULL, updated_at = NOW()
		 WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set application status: %w", err)
	}
	return nil
}

// SaveApplicationResult stores the tailored resume and cover letter for an
// application and marks it completed. One tailored record per application:
// re-tailoring overwrites.
func (db *DB) SaveApplicationResult(ctx context.Context, id uuid.UUID, tailored, letter any) error {
	tailoredJSON, err := json.Marshal(tailored)
	if err != nil {
		return fmt.Errorf("failed to marshal tailored content: %w", err)
	}
	letterJSON, err := json.Marshal(letter)
	if err != nil {
		return fmt.Errorf("failed to marshal cover letter: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE job_applications SET tailored = $1, cover_letter = $2, status = $3,
		        error_message = NULL, updated_at = NOW()
		 WHERE id = $4`,
		tailoredJSON, letterJSON, StatusCompleted, id,
	)
	if err != nil {
		return fmt.Errorf("failed to save application result: %w", err)
	}
	return nil
}

// MarkApplicationFailed records a tailoring failure.
func (db *DB) MarkApplicationFailed(ctx context.Context, id uuid.UUID, message string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE job_applications SET status = $1, error_message = $2, updated_at = NOW()
		 WHERE id = $3`,
		StatusFailed, message, id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark application failed: %w", err)
	}
	return nil
}
