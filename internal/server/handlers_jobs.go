package server

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/laudatorai/laudator/internal/db"
	"github.com/laudatorai/laudator/internal/jobdesc"
)

// backgroundTimeout bounds a single scrape+normalize or tailor run.
const backgroundTimeout = 2 * time.Minute

// CreateJobRequest is the body for POST /api/v1/jobs.
type CreateJobRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// ListJobsResponse is the body for GET /api/v1/jobs.
type ListJobsResponse struct {
	Jobs   []db.Job `json:"jobs"`
	Count  int      `json:"count"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}

// handleCreateJob accepts a job posting URL, records it and kicks off
// scraping and normalization in the background.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req CreateJobRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := s.db.CreateJob(r.Context(), req.URL)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "database error: "+err.Error())
		return
	}

	if !s.enqueue(func() { s.processJob(job.ID, job.URL) }) {
		if err := s.db.MarkJobFailed(r.Context(), job.ID, "processing queue is full"); err != nil {
			log.Printf("[jobs] failed to mark job %s failed: %v", job.ID, err)
		}
		s.errorResponse(w, http.StatusServiceUnavailable, "processing queue is full, try again later")
		return
	}

	s.jsonResponse(w, http.StatusAccepted, job)
}

// processJob runs the scrape-then-normalize pipeline for one job. Failures
// are recorded on the job record rather than returned.
func (s *Server) processJob(id uuid.UUID, url string) {
	ctx, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
	defer cancel()

	if err := s.db.SetJobStatus(ctx, id, db.StatusProcessing); err != nil {
		log.Printf("[jobs] failed to mark job %s processing: %v", id, err)
		return
	}

	raw, err := s.scraper.ScrapeJobPosting(ctx, url)
	if err != nil {
		log.Printf("[jobs] scrape failed for %s: %v", id, err)
		if dbErr := s.db.MarkJobFailed(ctx, id, err.Error()); dbErr != nil {
			log.Printf("[jobs] failed to mark job %s failed: %v", id, dbErr)
		}
		return
	}

	normalized := jobdesc.Normalize(*raw)
	payload, err := marshalValidatedJob(normalized)
	if err != nil {
		log.Printf("[jobs] normalization result for %s rejected: %v", id, err)
		if dbErr := s.db.MarkJobFailed(ctx, id, err.Error()); dbErr != nil {
			log.Printf("[jobs] failed to mark job %s failed: %v", id, dbErr)
		}
		return
	}

	if err := s.db.SaveNormalizedJob(ctx, id, payload, normalized.RawContent); err != nil {
		log.Printf("[jobs] failed to save normalized job %s: %v", id, err)
	}
}

// handleGetJob retrieves a job by ID.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job ID")
		return
	}

	job, err := s.db.GetJob(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "job not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleListJobs lists jobs with pagination.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 50)
	offset := parseQueryInt(r, "offset", 0)

	jobs, total, err := s.db.ListJobs(r.Context(), limit, offset)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "database error: "+err.Error())
		return
	}
	if jobs == nil {
		jobs = []db.Job{}
	}

	s.jsonResponse(w, http.StatusOK, ListJobsResponse{
		Jobs:   jobs,
		Count:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// parseQueryInt reads a non-negative integer query parameter with a default.
func parseQueryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return def
	}
	return value
}
