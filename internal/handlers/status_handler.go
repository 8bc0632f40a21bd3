package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/baysideshrimping/ncird-operations-center/internal/config"
	"github.com/baysideshrimping/ncird-operations-center/internal/database"
	"github.com/baysideshrimping/ncird-operations-center/internal/jurisdiction"
	"github.com/baysideshrimping/ncird-operations-center/internal/models"
)

// GetStreamStatus godoc
// @Summary Data stream status dashboard
// @Description Per-stream submission counts, last submission time, and whether the stream is overdue relative to its expected cadence.
// @Tags status
// @Produce  json
// @Success 200 {array} models.StreamStatus "Per-stream status"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /status [get]
func GetStreamStatus(c *gin.Context) {
	db := database.GetDB()
	now := time.Now()

	var statuses []models.StreamStatus
	for _, stream := range config.Streams() {
		var submissions []models.Submission
		if err := db.Where("system_id = ?", stream.ID).Order("created_at desc").Find(&submissions).Error; err != nil {
			RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to load stream status.", nil)
			return
		}

		status := models.StreamStatus{
			SystemID:        stream.ID,
			Name:            stream.Name,
			Enabled:         stream.Enabled,
			SubmissionCount: len(submissions),
		}
		for _, s := range submissions {
			switch s.Status {
			case "passed", "passed_with_warnings":
				status.PassedCount++
			case "failed":
				status.FailedCount++
			}
		}
		if len(submissions) > 0 {
			last := submissions[0].CreatedAt
			status.LastSubmission = &last
			status.Overdue = stream.Enabled && now.Sub(last) > time.Duration(stream.AlertIfMissingDays)*24*time.Hour
		} else {
			status.Overdue = stream.Enabled
		}
		statuses = append(statuses, status)
	}

	RespondWithSuccess(c, http.StatusOK, statuses)
}

// ListJurisdictions godoc
// @Summary Jurisdiction submission activity
// @Description Per-jurisdiction submission counts and most recent verdict, for jurisdictions that have submitted at least once.
// @Tags status
// @Produce  json
// @Success 200 {array} models.JurisdictionStatus "Per-jurisdiction activity"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /jurisdictions [get]
func ListJurisdictions(c *gin.Context) {
	db := database.GetDB()

	var submissions []models.Submission
	if err := db.Where("jurisdiction <> ''").Order("created_at desc").Find(&submissions).Error; err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to load jurisdiction activity.", nil)
		return
	}

	byAbbr := map[string]*models.JurisdictionStatus{}
	var order []string
	for _, s := range submissions {
		entry, ok := byAbbr[s.Jurisdiction]
		if !ok {
			name := s.Jurisdiction
			if info, found := jurisdiction.ByAbbr(s.Jurisdiction); found {
				name = info.Name
			}
			created := s.CreatedAt
			entry = &models.JurisdictionStatus{
				Jurisdiction:   s.Jurisdiction,
				Name:           name,
				LastStatus:     s.Status,
				LastSubmission: &created,
			}
			byAbbr[s.Jurisdiction] = entry
			order = append(order, s.Jurisdiction)
		}
		entry.SubmissionCount++
	}

	out := make([]models.JurisdictionStatus, 0, len(order))
	for _, abbr := range order {
		out = append(out, *byAbbr[abbr])
	}
	RespondWithSuccess(c, http.StatusOK, out)
}

// GetJurisdiction godoc
// @Summary Submissions for one jurisdiction
// @Description Get the recorded submissions for a single jurisdiction, resolved by abbreviation or FIPS code, newest first.
// @Tags status
// @Produce  json
// @Param   code  path  string  true  "Jurisdiction abbreviation or FIPS code (e.g. GA or 13)"
// @Success 200 {array} models.SubmissionSummary "Submissions for the jurisdiction"
// @Failure 404 {object} models.APIError "Unknown jurisdiction (NOT_FOUND)"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /jurisdictions/{code} [get]
func GetJurisdiction(c *gin.Context) {
	code := c.Param("code")

	info, ok := jurisdiction.Resolve(code)
	if !ok {
		RespondWithError(c, http.StatusNotFound, models.ErrorCodeNotFound, "Unknown jurisdiction.", gin.H{"code": code})
		return
	}

	var submissions []models.Submission
	if err := database.GetDB().Where("jurisdiction = ?", info.Abbr).Order("created_at desc").Find(&submissions).Error; err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to load jurisdiction submissions.", nil)
		return
	}

	summaries := make([]models.SubmissionSummary, 0, len(submissions))
	for _, s := range submissions {
		summaries = append(summaries, s.Summary())
	}
	RespondWithSuccess(c, http.StatusOK, summaries)
}

// ClearSubmissions godoc
// @Summary Delete all recorded submissions
// @Description Admin operation wiping the submission history. Requires the admin password as form field 'password' or header 'X-Admin-Password'.
// @Tags admin
// @Accept  multipart/form-data
// @Produce  json
// @Param   password  formData  string  false  "Admin password"
// @Success 200 {object} map[string]interface{} "Number of deleted submissions"
// @Failure 403 {object} models.APIError "Invalid password (INVALID_PASSWORD)"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /admin/clear [post]
func ClearSubmissions(c *gin.Context) {
	password := c.PostForm("password")
	if password == "" {
		password = c.GetHeader("X-Admin-Password")
	}
	if password != config.Load().AdminPassword {
		RespondWithError(c, http.StatusForbidden, models.ErrorCodeInvalidPassword, "Invalid password.", nil)
		return
	}

	db := database.GetDB()

	result := db.Where("1 = 1").Delete(&models.Submission{})
	if result.Error != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to clear submissions.", nil)
		return
	}

	RespondWithSuccess(c, http.StatusOK, gin.H{"deleted": result.RowsAffected})
}

// HealthCheck godoc
// @Summary Liveness probe
// @Tags status
// @Produce  json
// @Success 200 {object} map[string]string "Service health"
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
