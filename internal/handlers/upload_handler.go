package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/baysideshrimping/ncird-operations-center/internal/config"
	"github.com/baysideshrimping/ncird-operations-center/internal/database"
	"github.com/baysideshrimping/ncird-operations-center/internal/models"
	"github.com/baysideshrimping/ncird-operations-center/internal/validation"
)

// uploadExtensions maps the catalog format names to the extensions accepted
// on upload. JSON uploads arrive with a .json extension; spreadsheet formats
// cover both Excel variants.
var uploadExtensions = map[string][]string{
	"csv":  {".csv"},
	"xlsx": {".xlsx", ".xls"},
	"json": {".json"},
	"hl7":  {".hl7", ".txt"},
}

// UploadSubmission godoc
// @Summary Upload a file for validation
// @Description Upload a data file to a stream, run the stream's validation rules, and persist the verdict. The full itemized result is returned regardless of pass or fail.
// @Tags submissions
// @Accept  multipart/form-data
// @Produce  json
// @Param   system_id  path      string  true  "Data stream ID (e.g. nnad)"
// @Param   file       formData  file    true  "Data file (csv, xlsx, json depending on stream)"
// @Success 200 {object} validation.Payload "Validation completed (check status field for verdict)"
// @Failure 400 {object} models.APIError "Bad Request (see 'code': MISSING_FILE, FILE_TOO_LARGE, UNSUPPORTED_FILE_TYPE)"
// @Failure 404 {object} models.APIError "Stream not found (STREAM_NOT_FOUND)"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /streams/{system_id}/submissions [post]
func UploadSubmission(c *gin.Context) {
	systemID := c.Param("system_id")

	stream, ok := config.GetStream(systemID)
	if !ok {
		RespondWithError(c, http.StatusNotFound, models.ErrorCodeStreamNotFound, "Unknown data stream.", gin.H{"system_id": systemID})
		return
	}
	if !stream.Enabled {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeStreamDisabled, "Data stream is not accepting uploads.", gin.H{"system_id": systemID})
		return
	}

	validator, ok := validation.Get(systemID)
	if !ok {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "No validator registered for stream.", gin.H{"system_id": systemID})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeMissingFile, "No file provided. Use multipart form field 'file'.", nil)
		return
	}

	cfg := config.Load()
	if fileHeader.Size > cfg.MaxUploadSize {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeFileTooLarge, "Uploaded file exceeds the size limit.", gin.H{"limit_bytes": cfg.MaxUploadSize})
		return
	}

	filename := filepath.Base(fileHeader.Filename)
	if !extensionAllowed(stream, filename) {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeUnsupportedType, "File type not accepted for this stream.", gin.H{"accepted_formats": stream.Formats})
		return
	}

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(filename))
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to store uploaded file.", nil)
		return
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to store uploaded file.", nil)
		return
	}

	result := validator.ValidateFile(tmpPath, filename)
	payload := result.ToPayload()

	resultJSON, err := json.Marshal(payload)
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to serialize validation result.", nil)
		return
	}

	submission := models.Submission{
		ID:           payload.SubmissionID,
		SystemID:     payload.SystemID,
		Filename:     payload.Filename,
		Jurisdiction: payload.Jurisdiction,
		Status:       string(payload.Status),
		RowCount:     payload.RowCount,
		ErrorCount:   payload.ErrorCount,
		WarningCount: payload.WarningCount,
		ResultJSON:   string(resultJSON),
	}

	db := database.GetDB()
	if err := db.Create(&submission).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code == "23505" { // unique_violation
				RespondWithError(c, http.StatusConflict, models.ErrorCodeConflict, "Submission ID collision, retry the upload.", gin.H{"id": submission.ID})
				return
			}
		}
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to record submission.", nil)
		return
	}

	RespondWithSuccess(c, http.StatusOK, payload)
}

func extensionAllowed(stream config.DataStream, filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, format := range stream.Formats {
		for _, allowed := range uploadExtensions[format] {
			if ext == allowed {
				return true
			}
		}
	}
	return false
}
