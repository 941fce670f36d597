// Package models contains shared data models used across the SoilScope codebase.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Report lifecycle statuses. A report is created PENDING at upload time,
// moves to ANALYZING when the background task picks it up, and ends in
// COMPLETED or FAILED. COMPLETED covers degraded and rejected analyses;
// FAILED is reserved for pipeline failures (persistence errors, panics).
const (
	ReportStatusPending   = "PENDING"
	ReportStatusAnalyzing = "ANALYZING"
	ReportStatusCompleted = "COMPLETED"
	ReportStatusFailed    = "FAILED"
)

// Growing seasons recognized by the analysis pipeline.
const (
	SeasonKharif = "KHARIF"
	SeasonRabi   = "RABI"
	SeasonZaid   = "ZAID"
)

// ValidSeason reports whether s is one of the recognized season values.
func ValidSeason(s string) bool {
	return s == SeasonKharif || s == SeasonRabi || s == SeasonZaid
}

// Report is a single uploaded soil report and its analysis state.
// Owned by the report lifecycle service; status transitions are persisted
// as atomic updates keyed by ID and never run backwards.
type Report struct {
	ID            uuid.UUID   `db:"id"             json:"id"`
	UserID        uuid.UUID   `db:"user_id"        json:"user_id"`
	District      string      `db:"district"       json:"district"`
	State         string      `db:"state"          json:"state"`
	Area          string      `db:"area"           json:"area"`
	Season        string      `db:"season"         json:"season"`
	ReportFile    string      `db:"report_file"    json:"report_file"`
	ExtractedText *string     `db:"extracted_text" json:"extracted_text,omitempty"`
	Status        string      `db:"status"         json:"status"`
	Analysis      *AIAnalysis `db:"analysis"       json:"analysis,omitempty"`
	AnalyzedAt    *time.Time  `db:"analyzed_at"    json:"analyzed_at,omitempty"`
	CreatedAt     time.Time   `db:"created_at"     json:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"     json:"updated_at"`
}
