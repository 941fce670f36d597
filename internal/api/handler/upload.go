// Package handler contains the HTTP handlers for the report API.
package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	mw "github.com/soilscope/soilscope/internal/api/middleware"
	"github.com/soilscope/soilscope/internal/api/response"
	"github.com/soilscope/soilscope/internal/extract"
	"github.com/soilscope/soilscope/internal/report"
	"github.com/soilscope/soilscope/internal/store"
	"github.com/soilscope/soilscope/pkg/models"
)

// allowedExtensions mirrors the upload filter: images are accepted for
// later manual review, documents for text extraction.
var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

// ReportService is the report lifecycle surface the handlers depend on.
type ReportService interface {
	Create(ctx context.Context, params report.CreateParams) (*models.Report, error)
	Dispatch(report *models.Report)
	Get(ctx context.Context, id uuid.UUID) (*models.Report, error)
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*models.Report, error)
	List(ctx context.Context, filter store.ReportFilter) ([]*models.Report, int, error)
}

// Extractor pulls plain text out of an uploaded file.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// NewUploadHandler returns an http.HandlerFunc for POST /api/v1/reports/upload.
// It stores the file, extracts its text synchronously, persists a PENDING
// report, and dispatches background analysis before responding 201.
func NewUploadHandler(svc ReportService, extractor Extractor, uploadDir string, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := mw.GetUserID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing user", nil)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			response.Error(w, http.StatusRequestEntityTooLarge,
				"FILE_TOO_LARGE", "Uploaded file exceeds the size limit", nil)
			return
		}

		district := strings.TrimSpace(r.FormValue("district"))
		state := strings.TrimSpace(r.FormValue("state"))
		area := strings.TrimSpace(r.FormValue("area"))
		season := strings.ToUpper(strings.TrimSpace(r.FormValue("season")))

		if district == "" || state == "" || area == "" || season == "" {
			response.Error(w, http.StatusBadRequest,
				"INVALID_REQUEST", "district, state, area, and season are required", nil)
			return
		}
		if !models.ValidSeason(season) {
			response.Error(w, http.StatusBadRequest,
				"INVALID_REQUEST", "season must be one of KHARIF, RABI, ZAID", nil)
			return
		}

		file, header, err := r.FormFile("reportFile")
		if err != nil {
			response.Error(w, http.StatusBadRequest,
				"INVALID_REQUEST", "reportFile is required", nil)
			return
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !allowedExtensions[ext] {
			response.Error(w, http.StatusBadRequest,
				"UNSUPPORTED_FILE_TYPE", "Only image and document files are allowed", nil)
			return
		}

		path, err := saveUpload(file, uploadDir, ext)
		if err != nil {
			response.Error(w, http.StatusInternalServerError,
				"INTERNAL_ERROR", "Failed to store uploaded file", nil)
			return
		}

		text, err := extractor.Extract(r.Context(), path)
		if err != nil {
			// Extraction degrades internally; an error here means the
			// type slipped past the allow-list.
			response.Error(w, http.StatusBadRequest,
				"UNSUPPORTED_FILE_TYPE", "File type cannot be processed", nil)
			return
		}

		created, err := svc.Create(r.Context(), report.CreateParams{
			UserID:        userID,
			District:      district,
			State:         state,
			Area:          area,
			Season:        season,
			ReportFile:    path,
			ExtractedText: text,
		})
		if err != nil {
			response.Error(w, http.StatusInternalServerError,
				"INTERNAL_ERROR", "Failed to create report", nil)
			return
		}

		svc.Dispatch(created)

		response.Created(w, created)
	}
}

// saveUpload writes the multipart file under dir with a collision-proof name.
func saveUpload(src io.Reader, dir, ext string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("report-%d-%s%s", time.Now().UnixNano(), uuid.NewString()[:8], ext)
	path := filepath.Join(dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return path, nil
}

var (
	_ Extractor     = (*extract.Service)(nil)
	_ ReportService = (*report.Service)(nil)
)
