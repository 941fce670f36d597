// Package report owns the soil report lifecycle: creation, the background
// analysis task, and owner-scoped retrieval.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/soilscope/soilscope/internal/analysis"
	"github.com/soilscope/soilscope/internal/store"
	"github.com/soilscope/soilscope/pkg/models"
)

// Analyzer produces an analysis for a report. It never fails: upstream
// problems surface as degraded results inside the returned value.
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) *models.AIAnalysis
}

// CreateParams holds validated inputs for a new report.
type CreateParams struct {
	UserID        uuid.UUID
	District      string
	State         string
	Area          string
	Season        string
	ReportFile    string
	ExtractedText string
}

// Service manages report records and dispatches background analysis.
type Service struct {
	store    store.Store
	analyzer Analyzer
	now      func() time.Time
}

func NewService(st store.Store, analyzer Analyzer) *Service {
	return &Service{store: st, analyzer: analyzer, now: time.Now}
}

// Create persists a new PENDING report.
func (s *Service) Create(ctx context.Context, params CreateParams) (*models.Report, error) {
	if params.UserID == uuid.Nil {
		return nil, fmt.Errorf("invalid report: user ID is required")
	}
	if !models.ValidSeason(params.Season) {
		return nil, fmt.Errorf("invalid report: unknown season %q", params.Season)
	}

	report := &models.Report{
		ID:         uuid.New(),
		UserID:     params.UserID,
		District:   params.District,
		State:      params.State,
		Area:       params.Area,
		Season:     params.Season,
		ReportFile: params.ReportFile,
		Status:     models.ReportStatusPending,
	}
	if params.ExtractedText != "" {
		report.ExtractedText = &params.ExtractedText
	}

	if err := s.store.CreateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("creating report: %w", err)
	}
	return report, nil
}

// Dispatch starts background analysis for the report and returns
// immediately. The caller keeps serving the request; progress is
// observable through the report's status.
func (s *Service) Dispatch(report *models.Report) {
	go s.runAnalysis(report)
}

// runAnalysis performs the analysis in a goroutine. It recovers from
// panics and always leaves the report in a terminal status. The analyzer
// itself cannot fail, so FAILED only marks pipeline errors.
func (s *Service) runAnalysis(report *models.Report) {
	ctx := context.Background()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in runAnalysis", "error", r, "report_id", report.ID)
			s.markFailed(ctx, report.ID, fmt.Sprintf("panic: %v", r))
		}
	}()

	if err := s.store.UpdateReportStatus(ctx, report.ID, models.ReportStatusAnalyzing); err != nil {
		slog.Error("marking report analyzing", "error", err, "report_id", report.ID)
		s.markFailed(ctx, report.ID, fmt.Sprintf("starting analysis: %v", err))
		return
	}

	text := ""
	if report.ExtractedText != nil {
		text = *report.ExtractedText
	}

	result := s.analyzer.Analyze(ctx, analysis.Request{
		District:      report.District,
		State:         report.State,
		Area:          report.Area,
		Season:        report.Season,
		ExtractedText: text,
	})

	err := s.store.UpdateReportStatus(ctx, report.ID, models.ReportStatusCompleted,
		store.WithAnalysis(result), store.WithAnalyzedAt(s.now().UTC()))
	if err != nil {
		slog.Error("storing analysis result", "error", err, "report_id", report.ID)
		s.markFailed(ctx, report.ID, fmt.Sprintf("storing result: %v", err))
		return
	}

	slog.Info("report analysis completed", "report_id", report.ID, "score", result.OverallScore)
}

func (s *Service) markFailed(ctx context.Context, id uuid.UUID, msg string) {
	_ = s.store.UpdateReportStatus(ctx, id, models.ReportStatusFailed,
		store.WithAnalysis(&models.AIAnalysis{
			Error:     msg,
			Timestamp: s.now().UTC().Format(time.RFC3339),
		}))
}

// Get fetches a report regardless of owner. Admin use only.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	return s.store.GetReport(ctx, id)
}

// GetOwned fetches a report and enforces ownership. A report belonging
// to someone else reads as not found so ids cannot be probed.
func (s *Service) GetOwned(ctx context.Context, id, userID uuid.UUID) (*models.Report, error) {
	report, err := s.store.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.UserID != userID {
		return nil, fmt.Errorf("%w: report %s", store.ErrNotFound, id)
	}
	return report, nil
}

// List returns reports matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter store.ReportFilter) ([]*models.Report, int, error) {
	return s.store.ListReports(ctx, filter)
}
