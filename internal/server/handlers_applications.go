package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/laudatorai/laudator/internal/coverletter"
	"github.com/laudatorai/laudator/internal/db"
	"github.com/laudatorai/laudator/internal/jobdesc"
	"github.com/laudatorai/laudator/internal/resume"
	"github.com/laudatorai/laudator/internal/tailor"
)

// CreateApplicationRequest is the body for POST /api/v1/applications.
type CreateApplicationRequest struct {
	JobID    string `json:"job_id" validate:"required,uuid"`
	ResumeID string `json:"resume_id" validate:"required,uuid"`
}

// handleCreateApplication joins a completed job and resume and runs tailoring
// plus cover-letter generation in the background.
func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	var req CreateApplicationRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	jobID := uuid.MustParse(req.JobID)
	resumeID := uuid.MustParse(req.ResumeID)
	ctx := r.Context()

	job, err := s.db.GetJob(ctx, jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "job not found")
		return
	}
	if job.Status != db.StatusCompleted {
		s.errorResponse(w, http.StatusConflict, "job is not processed yet")
		return
	}

	record, err := s.db.GetResume(ctx, resumeID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "database error: "+err.Error())
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "resume not found")
		return
	}
	if record.Status != db.StatusCompleted {
		s.errorResponse(w, http.StatusConflict, "resume is not processed yet")
		return
	}

	application, err := s.db.CreateApplication(ctx, jobID, resumeID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "database error: "+err.Error())
		return
	}

	if !s.enqueue(func() { s.processApplication(application.ID, job.Normalized, record.Parsed) }) {
		if err := s.db.MarkApplicationFailed(ctx, application.ID, "processing queue is full"); err != nil {
			log.Printf("[applications] failed to mark application %s failed: %v", application.ID, err)
		}
		s.errorResponse(w, http.StatusServiceUnavailable, "processing queue is full, try again later")
		return
	}

	s.jsonResponse(w, http.StatusAccepted, application)
}

// processApplication tailors the resume for the job and generates the cover
// letter, storing both on the application record.
func (s *Server) processApplication(id uuid.UUID, normalizedJSON, parsedJSON json.RawMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
	defer cancel()

	if err := s.db.SetApplicationStatus(ctx, id, db.StatusProcessing); err != nil {
		log.Printf("[applications] failed to mark application %s processing: %v", id, err)
		return
	}

	var job jobdesc.NormalizedJobDescription
	if err := json.Unmarshal(normalizedJSON, &job); err != nil {
		s.failApplication(ctx, id, "stored job content is unreadable: "+err.Error())
		return
	}

	var content resume.ParsedResumeContent
	if err := json.Unmarshal(parsedJSON, &content); err != nil {
		s.failApplication(ctx, id, "stored resume content is unreadable: "+err.Error())
		return
	}

	tailored := tailor.Tailor(&content, &job)
	letter := s.letters.Generate(ctx, &job, tailored)

	payload, err := marshalValidatedResume(tailored)
	if err != nil {
		s.failApplication(ctx, id, "tailored content rejected: "+err.Error())
		return
	}

	if err := s.db.SaveApplicationResult(ctx, id, payload, letter); err != nil {
		log.Printf("[applications] failed to save result for %s: %v", id, err)
	}
}

func (s *Server) failApplication(ctx context.Context, id uuid.UUID, message string) {
	log.Printf("[applications] %s: %s", id, message)
	if err := s.db.MarkApplicationFailed(ctx, id, message); err != nil {
		log.Printf("[applications] failed to mark application %s failed: %v", id, err)
	}
}

// handleGetApplication retrieves an application by ID.
func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid application ID")
		return
	}

	application, err := s.db.GetApplication(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "database error: "+err.Error())
		return
	}
	if application == nil {
		s.errorResponse(w, http.StatusNotFound, "application not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, application)
}

// handlePreview renders the tailored resume (default) or the cover letter
// (?doc=letter) as HTML.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid application ID")
		return
	}

	application, err := s.db.GetApplication(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "database error: "+err.Error())
		return
	}
	if application == nil {
		s.errorResponse(w, http.StatusNotFound, "application not found")
		return
	}
	if application.Status != db.StatusCompleted {
		s.errorResponse(w, http.StatusConflict, "application is not processed yet")
		return
	}

	var tailored resume.ParsedResumeContent
	if err := json.Unmarshal(application.Tailored, &tailored); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "stored tailored content is unreadable")
		return
	}

	var html string
	switch r.URL.Query().Get("doc") {
	case "", "resume":
		html, err = s.registry.RenderResume(&tailored)
	case "letter":
		var letter coverletter.Letter
		if err := json.Unmarshal(application.CoverLetter, &letter); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "stored cover letter is unreadable")
			return
		}
		html, err = s.registry.RenderCoverLetter(&letter, tailored.PersonalInfo.Name)
	default:
		s.errorResponse(w, http.StatusBadRequest, "doc must be resume or letter")
		return
	}
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "render failed: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}
