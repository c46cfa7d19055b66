package server

import (
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/laudatorai/laudator/internal/db"
	"github.com/laudatorai/laudator/internal/resume"
)

// maxResumeUploadBytes caps resume uploads at 10 MiB.
const maxResumeUploadBytes = 10 << 20

// handleCreateResume accepts a multipart resume upload, stores the original
// bytes in the blob store and extracts structured content. Unsupported file
// formats are rejected before anything is persisted.
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxResumeUploadBytes)
	if err := r.ParseMultipartForm(maxResumeUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	ext := filepath.Ext(header.Filename)
	if !s.parser.Supports(ext) {
		s.errorResponse(w, http.StatusBadRequest, "unsupported file format: "+ext)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read upload: "+err.Error())
		return
	}

	ctx := r.Context()
	blobKey, err := s.store.Put(ctx, data)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "storage error: "+err.Error())
		return
	}

	record, err := s.db.CreateResume(ctx, header.Filename, blobKey)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "database error: "+err.Error())
		return
	}

	if err := s.db.SetResumeStatus(ctx, record.ID, db.StatusProcessing); err != nil {
		log.Printf("[resumes] failed to mark resume %s processing: %v", record.ID, err)
	}

	content, err := s.parser.Parse(data, ext)
	if err != nil {
		var formatErr *resume.UnsupportedFormatError
		if errors.As(err, &formatErr) {
			// Supports was checked above, so this is unreachable in practice.
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		if dbErr := s.db.MarkResumeFailed(ctx, record.ID, err.Error()); dbErr != nil {
			log.Printf("[resumes] failed to mark resume %s failed: %v", record.ID, dbErr)
		}
		s.errorResponse(w, http.StatusUnprocessableEntity, "extraction failed: "+err.Error())
		return
	}

	payload, err := marshalValidatedResume(content)
	if err != nil {
		log.Printf("[resumes] extraction result for %s rejected: %v", record.ID, err)
		if dbErr := s.db.MarkResumeFailed(ctx, record.ID, err.Error()); dbErr != nil {
			log.Printf("[resumes] failed to mark resume %s failed: %v", record.ID, dbErr)
		}
		s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.db.SaveParsedResume(ctx, record.ID, payload); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "database error: "+err.Error())
		return
	}

	stored, err := s.db.GetResume(ctx, record.ID)
	if err != nil || stored == nil {
		s.errorResponse(w, http.StatusInternalServerError, "database error")
		return
	}

	s.jsonResponse(w, http.StatusCreated, stored)
}

// handleGetResume retrieves a resume record by ID.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid resume ID")
		return
	}

	record, err := s.db.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "database error: "+err.Error())
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "resume not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}
