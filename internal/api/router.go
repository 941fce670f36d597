package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	mw "github.com/soilscope/soilscope/internal/api/middleware"
	"github.com/soilscope/soilscope/internal/api/response"
	"github.com/soilscope/soilscope/pkg/models"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	Auth      *mw.Auth
	RateLimit *mw.RateLimit

	HealthHandler   http.HandlerFunc
	UploadHandler   http.HandlerFunc
	MyReports       http.HandlerFunc
	GetReport       http.HandlerFunc
	ReportStatus    http.HandlerFunc
	DetailedHandler http.HandlerFunc
	AdminReports    http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	// Public health check
	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(deps.Auth.Authenticate)
		r.Use(deps.RateLimit.Limit)

		r.Post("/api/v1/reports/upload", orNotImplemented(deps.UploadHandler))
		r.Get("/api/v1/reports/my-reports", orNotImplemented(deps.MyReports))
		r.Get("/api/v1/reports/{reportID}", orNotImplemented(deps.GetReport))
		r.Get("/api/v1/reports/{reportID}/status", orNotImplemented(deps.ReportStatus))
		r.Post("/api/v1/reports/{reportID}/detailed-recommendations", orNotImplemented(deps.DetailedHandler))

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.RequireRole(models.RoleAdmin))

			r.Get("/api/v1/reports/admin/all", orNotImplemented(deps.AdminReports))
		})
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
