package models

// APIError represents a standardized error response format for the API.
// @Description APIError is the standardized error response, with an application-specific error code, a human-readable message, and optional details.
type APIError struct {
	Code    string      `json:"code"`              // Application-specific error code (e.g., "STREAM_NOT_FOUND")
	Message string      `json:"message"`           // Human-readable message describing the error
	Details interface{} `json:"details,omitempty"` // Optional field for additional error details
}

// Predefined application-specific error codes
const (
	// Generic Errors
	ErrorCodeInternalServerError = "INTERNAL_SERVER_ERROR"
	ErrorCodeUnknown             = "UNKNOWN_ERROR"

	// Input Validation & Upload Errors
	ErrorCodeValidation      = "VALIDATION_ERROR"
	ErrorCodeInvalidJSON     = "INVALID_JSON"
	ErrorCodeMissingFile     = "MISSING_FILE"
	ErrorCodeFileTooLarge    = "FILE_TOO_LARGE"
	ErrorCodeUnsupportedType = "UNSUPPORTED_FILE_TYPE"

	// Resource Specific Errors
	ErrorCodeNotFound           = "NOT_FOUND"
	ErrorCodeStreamNotFound     = "STREAM_NOT_FOUND"
	ErrorCodeStreamDisabled     = "STREAM_DISABLED"
	ErrorCodeSubmissionNotFound = "SUBMISSION_NOT_FOUND"

	// Business Logic / State Errors
	ErrorCodeConflict        = "CONFLICT_ERROR"
	ErrorCodeInvalidPassword = "INVALID_PASSWORD"
)
