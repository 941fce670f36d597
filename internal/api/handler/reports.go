package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	mw "github.com/soilscope/soilscope/internal/api/middleware"
	"github.com/soilscope/soilscope/internal/api/response"
	"github.com/soilscope/soilscope/internal/store"
	"github.com/soilscope/soilscope/pkg/models"
)

// NewMyReportsHandler returns an http.HandlerFunc for GET /api/v1/reports/my-reports.
func NewMyReportsHandler(svc ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := mw.GetUserID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing user", nil)
			return
		}

		filter, ok := parseReportFilter(w, r)
		if !ok {
			return
		}
		filter.UserID = userID

		reports, total, err := svc.List(r.Context(), filter)
		if err != nil {
			response.Error(w, http.StatusInternalServerError,
				"INTERNAL_ERROR", "Failed to list reports", nil)
			return
		}
		if reports == nil {
			reports = []*models.Report{}
		}

		response.Collection(w, reports, response.PaginationMeta{
			Page:    filter.Page,
			Limit:   filter.Limit,
			Total:   total,
			HasNext: filter.Page*filter.Limit < total,
		})
	}
}

// NewAdminReportsHandler returns an http.HandlerFunc for GET /api/v1/reports/admin/all.
// Lists reports across all owners; the router guards it with the ADMIN role.
func NewAdminReportsHandler(svc ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, ok := parseReportFilter(w, r)
		if !ok {
			return
		}

		reports, total, err := svc.List(r.Context(), filter)
		if err != nil {
			response.Error(w, http.StatusInternalServerError,
				"INTERNAL_ERROR", "Failed to list reports", nil)
			return
		}
		if reports == nil {
			reports = []*models.Report{}
		}

		response.Collection(w, reports, response.PaginationMeta{
			Page:    filter.Page,
			Limit:   filter.Limit,
			Total:   total,
			HasNext: filter.Page*filter.Limit < total,
		})
	}
}

// NewGetReportHandler returns an http.HandlerFunc for GET /api/v1/reports/{reportID}.
func NewGetReportHandler(svc ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := mw.GetUserID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing user", nil)
			return
		}

		id, ok := parseReportID(w, r)
		if !ok {
			return
		}

		rep, err := svc.GetOwned(r.Context(), id, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound,
					"REPORT_NOT_FOUND", "Report not found", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError,
				"INTERNAL_ERROR", "Failed to fetch report", nil)
			return
		}

		response.JSON(w, rep)
	}
}

// NewReportStatusHandler returns an http.HandlerFunc for GET /api/v1/reports/{reportID}/status.
// Lightweight polling endpoint: status plus whether the analysis landed.
func NewReportStatusHandler(svc ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := mw.GetUserID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing user", nil)
			return
		}

		id, ok := parseReportID(w, r)
		if !ok {
			return
		}

		rep, err := svc.GetOwned(r.Context(), id, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound,
					"REPORT_NOT_FOUND", "Report not found", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError,
				"INTERNAL_ERROR", "Failed to fetch report", nil)
			return
		}

		response.JSON(w, statusResponse{
			ID:          rep.ID.String(),
			Status:      rep.Status,
			HasAnalysis: rep.Analysis != nil,
			CreatedAt:   rep.CreatedAt,
			AnalyzedAt:  rep.AnalyzedAt,
		})
	}
}

// statusResponse keeps polling cheap: lifecycle fields only, no analysis
// payload. AnalyzedAt is null until the background task completes.
type statusResponse struct {
	ID          string     `json:"id"`
	Status      string     `json:"status"`
	HasAnalysis bool       `json:"hasAnalysis"`
	CreatedAt   time.Time  `json:"createdAt"`
	AnalyzedAt  *time.Time `json:"analyzedAt"`
}

func parseReportID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "reportID"))
	if err != nil {
		response.Error(w, http.StatusBadRequest,
			"INVALID_REQUEST", "reportID must be a valid UUID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func parseReportFilter(w http.ResponseWriter, r *http.Request) (store.ReportFilter, bool) {
	filter := store.ReportFilter{Page: 1, Limit: 20}

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			response.Error(w, http.StatusBadRequest,
				"INVALID_REQUEST", "page must be a positive integer", nil)
			return filter, false
		}
		filter.Page = page
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			response.Error(w, http.StatusBadRequest,
				"INVALID_REQUEST", "limit must be a positive integer", nil)
			return filter, false
		}
		if limit > 100 {
			limit = 100
		}
		filter.Limit = limit
	}
	if status := r.URL.Query().Get("status"); status != "" {
		switch status {
		case models.ReportStatusPending, models.ReportStatusAnalyzing,
			models.ReportStatusCompleted, models.ReportStatusFailed:
			filter.Status = status
		default:
			response.Error(w, http.StatusBadRequest,
				"INVALID_REQUEST", "unknown status filter", nil)
			return filter, false
		}
	}
	return filter, true
}
