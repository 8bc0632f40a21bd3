package models

import (
	"time"
)

// Submission is the persisted record of one validated upload.
// @Description Submission records one uploaded file and its validation verdict.
type Submission struct {
	ID           string    `json:"id" gorm:"type:varchar(8);primary_key"`
	SystemID     string    `json:"system_id" gorm:"type:varchar(50);not null;index"`
	Filename     string    `json:"filename" gorm:"type:varchar(255);not null"`
	Jurisdiction string    `json:"jurisdiction,omitempty" gorm:"type:varchar(2);index"`
	Status       string    `json:"status" gorm:"type:varchar(30);not null;index"`
	RowCount     int       `json:"row_count"`
	ErrorCount   int       `json:"error_count"`
	WarningCount int       `json:"warning_count"`
	ResultJSON   string    `json:"-" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// SubmissionSummary is the list-view projection of a submission, without the
// full result payload.
type SubmissionSummary struct {
	ID           string    `json:"id"`
	SystemID     string    `json:"system_id"`
	Filename     string    `json:"filename"`
	Jurisdiction string    `json:"jurisdiction,omitempty"`
	Status       string    `json:"status"`
	RowCount     int       `json:"row_count"`
	ErrorCount   int       `json:"error_count"`
	WarningCount int       `json:"warning_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Summary projects a submission for list responses.
func (s Submission) Summary() SubmissionSummary {
	return SubmissionSummary{
		ID:           s.ID,
		SystemID:     s.SystemID,
		Filename:     s.Filename,
		Jurisdiction: s.Jurisdiction,
		Status:       s.Status,
		RowCount:     s.RowCount,
		ErrorCount:   s.ErrorCount,
		WarningCount: s.WarningCount,
		CreatedAt:    s.CreatedAt,
	}
}

// JurisdictionStatus summarizes submission activity for one jurisdiction on
// the status dashboard.
type JurisdictionStatus struct {
	Jurisdiction    string     `json:"jurisdiction"`
	Name            string     `json:"name"`
	SubmissionCount int        `json:"submission_count"`
	LastStatus      string     `json:"last_status,omitempty"`
	LastSubmission  *time.Time `json:"last_submission,omitempty"`
}

// StreamStatus summarizes submission activity for one data stream.
type StreamStatus struct {
	SystemID        string     `json:"system_id"`
	Name            string     `json:"name"`
	Enabled         bool       `json:"enabled"`
	SubmissionCount int        `json:"submission_count"`
	PassedCount     int        `json:"passed_count"`
	FailedCount     int        `json:"failed_count"`
	LastSubmission  *time.Time `json:"last_submission,omitempty"`
	Overdue         bool       `json:"overdue"`
}
