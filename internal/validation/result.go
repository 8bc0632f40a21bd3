// Package validation implements the rule engine for data stream submissions:
// the shared result model, the phase pipeline each stream validator runs, and
// the per-stream rule sets.
package validation

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Severity classifies a finding. Errors block a pass, warnings degrade it,
// info messages are descriptive only.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Status is the overall verdict for one submission. Pending is the only
// non-terminal state; DetermineStatus always overwrites it before a result is
// returned to a caller.
type Status string

const (
	StatusPending            Status = "pending"
	StatusPassed             Status = "passed"
	StatusPassedWithWarnings Status = "passed_with_warnings"
	StatusFailed             Status = "failed"
)

// Finding is one itemized message. Row (a display row number) and Field are
// attached only for cell- or row-scoped checks.
type Finding struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Row      int      `json:"row,omitempty"`
	Field    string   `json:"field,omitempty"`
}

// Result accumulates the findings for a single submission.
type Result struct {
	SubmissionID string
	SystemID     string
	Filename     string
	Timestamp    string
	Status       Status
	Jurisdiction string
	Errors       []Finding
	Warnings     []Finding
	InfoMessages []Finding
	RowCount     int
	Metadata     map[string]interface{}
}

// NewResult creates a pending result with a fresh short submission token.
func NewResult(systemID, filename string) *Result {
	return &Result{
		SubmissionID: strings.ReplaceAll(uuid.New().String(), "-", "")[:8],
		SystemID:     systemID,
		Filename:     filename,
		Timestamp:    time.Now().Format("2006-01-02 15:04:05"),
		Status:       StatusPending,
		Metadata:     map[string]interface{}{},
	}
}

// AddError records a submission-scoped error.
func (r *Result) AddError(message string) {
	r.Errors = append(r.Errors, Finding{Message: message, Severity: SeverityError})
}

// AddErrorAt records an error attached to a display row number and field.
func (r *Result) AddErrorAt(message string, row int, field string) {
	r.Errors = append(r.Errors, Finding{Message: message, Severity: SeverityError, Row: row, Field: field})
}

// AddWarning records a submission-scoped warning.
func (r *Result) AddWarning(message string) {
	r.Warnings = append(r.Warnings, Finding{Message: message, Severity: SeverityWarning})
}

// AddWarningAt records a warning attached to a display row number and field.
func (r *Result) AddWarningAt(message string, row int, field string) {
	r.Warnings = append(r.Warnings, Finding{Message: message, Severity: SeverityWarning, Row: row, Field: field})
}

// AddInfo records an informational message.
func (r *Result) AddInfo(message string) {
	r.InfoMessages = append(r.InfoMessages, Finding{Message: message, Severity: SeverityInfo})
}

// AddInfoAt records an informational message attached to a display row.
func (r *Result) AddInfoAt(message string, row int, field string) {
	r.InfoMessages = append(r.InfoMessages, Finding{Message: message, Severity: SeverityInfo, Row: row, Field: field})
}

// SetMetadata stores an arbitrary key/value pair on the result.
func (r *Result) SetMetadata(key string, value interface{}) {
	if r.Metadata == nil {
		r.Metadata = map[string]interface{}{}
	}
	r.Metadata[key] = value
}

// DetermineStatus recomputes the overall status from the current list
// contents. The derivation is pure and idempotent: it never depends on call
// order or previously derived state.
func (r *Result) DetermineStatus() Status {
	switch {
	case len(r.Errors) > 0:
		r.Status = StatusFailed
	case len(r.Warnings) > 0:
		r.Status = StatusPassedWithWarnings
	default:
		r.Status = StatusPassed
	}
	return r.Status
}

// ErrorSummary groups error counts by field name; findings without a field
// fall under "General".
func (r *Result) ErrorSummary() map[string]int {
	summary := map[string]int{}
	for _, f := range r.Errors {
		field := f.Field
		if field == "" {
			field = "General"
		}
		summary[field]++
	}
	return summary
}

// Payload is the serializable form of a result, as returned by the API and
// persisted with each submission.
type Payload struct {
	SubmissionID string                 `json:"submission_id"`
	SystemID     string                 `json:"system_id"`
	Filename     string                 `json:"filename"`
	Timestamp    string                 `json:"timestamp"`
	Status       Status                 `json:"status"`
	Jurisdiction string                 `json:"jurisdiction,omitempty"`
	Errors       []Finding              `json:"errors"`
	Warnings     []Finding              `json:"warnings"`
	InfoMessages []Finding              `json:"info_messages"`
	RowCount     int                    `json:"row_count"`
	Metadata     map[string]interface{} `json:"metadata"`
	ErrorCount   int                    `json:"error_count"`
	WarningCount int                    `json:"warning_count"`
	ErrorSummary map[string]int         `json:"error_summary"`
}

// ToPayload converts the result to its serializable form, filling in the
// derived counts and summary.
func (r *Result) ToPayload() Payload {
	errs := r.Errors
	if errs == nil {
		errs = []Finding{}
	}
	warns := r.Warnings
	if warns == nil {
		warns = []Finding{}
	}
	infos := r.InfoMessages
	if infos == nil {
		infos = []Finding{}
	}
	return Payload{
		SubmissionID: r.SubmissionID,
		SystemID:     r.SystemID,
		Filename:     r.Filename,
		Timestamp:    r.Timestamp,
		Status:       r.Status,
		Jurisdiction: r.Jurisdiction,
		Errors:       errs,
		Warnings:     warns,
		InfoMessages: infos,
		RowCount:     r.RowCount,
		Metadata:     r.Metadata,
		ErrorCount:   len(errs),
		WarningCount: len(warns),
		ErrorSummary: r.ErrorSummary(),
	}
}
