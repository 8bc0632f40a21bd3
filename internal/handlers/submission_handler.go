package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/baysideshrimping/ncird-operations-center/internal/database"
	"github.com/baysideshrimping/ncird-operations-center/internal/models"
)

const (
	DefaultLimit     = 20
	MaxLimit         = 100
	DefaultSortOrder = "desc"
	DefaultSortBy    = "created_at"
)

var AllowedSubmissionSortByFields = map[string]bool{
	"created_at":    true,
	"filename":      true,
	"status":        true,
	"system_id":     true,
	"jurisdiction":  true,
	"error_count":   true,
	"warning_count": true,
}

// ListSubmissions godoc
// @Summary List submissions
// @Description Get recorded submissions, newest first, with optional filters by stream, jurisdiction, and status.
// @Tags submissions
// @Produce  json
// @Param   system_id     query  string  false  "Filter by data stream ID"
// @Param   jurisdiction  query  string  false  "Filter by jurisdiction abbreviation"
// @Param   status        query  string  false  "Filter by verdict (passed, passed_with_warnings, failed)"
// @Param   limit         query  int     false  "Page size (default 20, max 100)"
// @Param   offset        query  int     false  "Page offset"
// @Param   sort_by       query  string  false  "Sort field (default created_at)"
// @Param   order         query  string  false  "Sort order asc or desc (default desc)"
// @Success 200 {array} models.SubmissionSummary "Submissions"
// @Failure 400 {object} models.APIError "Bad Request (VALIDATION_ERROR)"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /submissions [get]
func ListSubmissions(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", strconv.Itoa(DefaultLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid limit parameter: not a number.", gin.H{"limit": limitStr})
		return
	}
	if limit <= 0 {
		limit = DefaultLimit
	} else if limit > MaxLimit {
		limit = MaxLimit
	}

	offsetStr := c.DefaultQuery("offset", "0")
	offset, err := strconv.Atoi(offsetStr)
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid offset parameter: not a number.", gin.H{"offset": offsetStr})
		return
	}
	if offset < 0 {
		offset = 0
	}

	sortBy := c.DefaultQuery("sort_by", DefaultSortBy)
	if !AllowedSubmissionSortByFields[sortBy] {
		allowed := make([]string, 0, len(AllowedSubmissionSortByFields))
		for k := range AllowedSubmissionSortByFields {
			allowed = append(allowed, k)
		}
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid sort_by field for submissions.", gin.H{"field": sortBy, "allowed": allowed})
		return
	}

	order := strings.ToLower(c.DefaultQuery("order", DefaultSortOrder))
	if order != "asc" && order != "desc" {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid order parameter, must be 'asc' or 'desc'.", gin.H{"order": order})
		return
	}

	query := database.GetDB().Model(&models.Submission{})
	if systemID := c.Query("system_id"); systemID != "" {
		query = query.Where("system_id = ?", systemID)
	}
	if jur := c.Query("jurisdiction"); jur != "" {
		query = query.Where("jurisdiction = ?", strings.ToUpper(jur))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var submissions []models.Submission
	if err := query.Order(sortBy + " " + order).Limit(limit).Offset(offset).Find(&submissions).Error; err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to list submissions.", nil)
		return
	}

	summaries := make([]models.SubmissionSummary, 0, len(submissions))
	for _, s := range submissions {
		summaries = append(summaries, s.Summary())
	}
	RespondWithSuccess(c, http.StatusOK, summaries)
}

// GetSubmission godoc
// @Summary Get one submission
// @Description Get the full stored validation result for a submission by id.
// @Tags submissions
// @Produce  json
// @Param   id  path  string  true  "Submission ID"
// @Success 200 {object} validation.Payload "Stored validation result"
// @Failure 404 {object} models.APIError "Submission not found (SUBMISSION_NOT_FOUND)"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /submissions/{id} [get]
func GetSubmission(c *gin.Context) {
	id := c.Param("id")

	var submission models.Submission
	if err := database.GetDB().First(&submission, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondWithError(c, http.StatusNotFound, models.ErrorCodeSubmissionNotFound, "Submission not found.", gin.H{"id": id})
		} else {
			RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to load submission.", nil)
		}
		return
	}

	c.Data(http.StatusOK, "application/json", []byte(submission.ResultJSON))
}
