package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/soilscope/soilscope/pkg/models"
)

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateKey = errors.New("duplicate key violation")
var ErrInvalidTransition = errors.New("invalid report status transition")

// Store is the data access interface. All database operations go through here.
type Store interface {
	Ping(ctx context.Context) error

	GetAPIKeyByPrefix(ctx context.Context, prefix string) ([]*models.APIKey, error)
	UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error
	CreateAPIKey(ctx context.Context, key *models.APIKey) error

	CreateReport(ctx context.Context, report *models.Report) error
	GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error)
	ListReports(ctx context.Context, filter ReportFilter) ([]*models.Report, int, error)
	UpdateReportStatus(ctx context.Context, id uuid.UUID, status string, opts ...ReportUpdateOption) error
}

// ReportFilter narrows and paginates report listings. A zero UserID means
// all users (admin listing).
type ReportFilter struct {
	UserID uuid.UUID
	Status string
	Since  time.Time
	Page   int
	Limit  int
}

// ReportUpdate collects optional fields for a status transition.
type ReportUpdate struct {
	Analysis   *models.AIAnalysis
	AnalyzedAt *time.Time
}

type ReportUpdateOption func(*ReportUpdate)

// WithAnalysis attaches the analysis payload to a terminal transition.
func WithAnalysis(a *models.AIAnalysis) ReportUpdateOption {
	return func(u *ReportUpdate) {
		u.Analysis = a
	}
}

// WithAnalyzedAt records when the analysis finished.
func WithAnalyzedAt(t time.Time) ReportUpdateOption {
	return func(u *ReportUpdate) {
		u.AnalyzedAt = &t
	}
}
