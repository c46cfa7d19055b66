package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, url, status, error_message, normalized, COALESCE(raw_content, ''), created_at, updated_at`

// CreateJob inserts a new job in pending state and returns it.
func (db *DB) CreateJob(ctx context.Context, url string) (*Job, error) {
	var j Job
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (url, status) VALUES ($1, $2)
		 RETURNING `+jobColumns,
		url, StatusPending,
	).Scan(&j.ID, &j.URL, &j.Status, &j.ErrorMessage, &j.Normalized, &j.RawContent,
		&j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return &j, nil
}

// GetJob retrieves a job by ID. Returns (nil, nil) when no row exists.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	var j Job
	err := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`,
		id,
	).Scan(&j.ID, &j.URL, &j.Status, &j.ErrorMessage, &j.Normalized, &j.RawContent,
		&j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &j, nil
}

// ListJobs returns jobs newest first, with the total count for pagination.
func (db *DB) ListJobs(ctx context.Context, limit, offset int) ([]Job, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.URL, &j.Status, &j.ErrorMessage, &j.Normalized,
			&j.RawContent, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, j)
	}
	return jobs, total, nil
}

// SetJobStatus moves a job to the given status, clearing any error message.
// Moves that are not legal lifecycle steps are rejected.
func (db *DB) SetJobStatus(ctx context.Context, id uuid.UUID, status Status) error {
	var current Status
	if err := db.pool.QueryRow(ctx, `SELECT status FROM jobs WHERE id = $1`, id).Scan(&current); err != nil {
		return fmt.Errorf("failed to set job status: %w", err)
	}
	if err := checkTransition(current, status); err != nil {
		return err
	}

	_, err := db.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, error_message = NULL, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set job status: %w", err)
	}
	return nil
}

// SaveNormalizedJob stores the normalization result and marks the job
// completed. Reprocessing overwrites the previous result.
func (db *DB) SaveNormalizedJob(ctx context.Context, id uuid.UUID, normalized any, rawContent string) error {
	payload, err := json.Marshal(normalized)
	if err != nil {
		return fmt.Errorf("failed to marshal normalized job: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE jobs SET normalized = $1, raw_content = $2, status = $3,
		        error_message = NULL, updated_at = NOW()
		 WHERE id = $4`,
		payload, rawContent, StatusCompleted, id,
	)
	if err != nil {
		return fmt.Errorf("failed to save normalized job: %w", err)
	}
	return nil
}

// MarkJobFailed records a processing failure.
func (db *DB) MarkJobFailed(ctx context.Context, id uuid.UUID, message string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, error_message = $2, updated_at = NOW() WHERE id = $3`,
		StatusFailed, message, id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark job failed: %w", err)
	}
	return nil
}
