package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/baysideshrimping/ncird-operations-center/internal/database"
	"github.com/baysideshrimping/ncird-operations-center/internal/models"
	"github.com/baysideshrimping/ncird-operations-center/internal/validation"
)

var testDB *gorm.DB
var router *gin.Engine

// TestMain sets up the test database and router, runs tests, and then tears down.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	testDB, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to test database: %v", err)
	}

	err = testDB.AutoMigrate(&models.Submission{})
	if err != nil {
		log.Fatalf("Failed to migrate test database schema: %v", err)
	}
	database.DB = testDB

	router = gin.Default()
	RegisterRoutes(router)

	exitCode := m.Run()

	sqlDB, err := testDB.DB()
	if err == nil {
		sqlDB.Close()
	} else {
		log.Printf("Error getting DB for teardown: %v", err)
	}
	os.Exit(exitCode)
}

func clearSubmissionsTable(t *testing.T) {
	t.Helper()
	require.NoError(t, testDB.Where("1 = 1").Delete(&models.Submission{}).Error)
}

// uploadCSV posts csv content as a multipart upload to a stream.
func uploadCSV(t *testing.T, systemID, filename, content string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/streams/%s/submissions", systemID), body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const validCaseCSV = `condition,reporting_jurisdiction,case_status,report_date,illness_onset_date,lab_result
Mumps,GA,410605003,2026-05-10,2026-05-01,positive
Mumps,GA,410605003,2026-05-11,2026-05-02,positive
`

const failingCaseCSV = `condition,reporting_jurisdiction,case_status,report_date,illness_onset_date
Mumps,GA,bogus,2026-05-10,2026-05-01
`

func TestUploadSubmission(t *testing.T) {
	t.Run("valid upload passes and is persisted", func(t *testing.T) {
		clearSubmissionsTable(t)
		w := uploadCSV(t, "nnad", "GA_cases.csv", validCaseCSV)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var payload validation.Payload
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
		assert.Equal(t, validation.StatusPassed, payload.Status)
		assert.Equal(t, "nnad", payload.SystemID)
		assert.Equal(t, "GA", payload.Jurisdiction)
		assert.Equal(t, 2, payload.RowCount)
		assert.Len(t, payload.SubmissionID, 8)

		var stored models.Submission
		require.NoError(t, testDB.First(&stored, "id = ?", payload.SubmissionID).Error)
		assert.Equal(t, "passed", stored.Status)
		assert.Equal(t, "GA_cases.csv", stored.Filename)
		assert.Equal(t, "GA", stored.Jurisdiction)
	})

	t.Run("failing upload still returns the itemized result", func(t *testing.T) {
		clearSubmissionsTable(t)
		w := uploadCSV(t, "nnad", "GA_cases.csv", failingCaseCSV)

		require.Equal(t, http.StatusOK, w.Code)

		var payload validation.Payload
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
		assert.Equal(t, validation.StatusFailed, payload.Status)
		assert.Greater(t, payload.ErrorCount, 0)

		var stored models.Submission
		require.NoError(t, testDB.First(&stored, "id = ?", payload.SubmissionID).Error)
		assert.Equal(t, "failed", stored.Status)
	})

	t.Run("unknown stream is rejected without recording", func(t *testing.T) {
		clearSubmissionsTable(t)
		w := uploadCSV(t, "bogus", "GA_cases.csv", validCaseCSV)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var apiErr models.APIError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
		assert.Equal(t, models.ErrorCodeStreamNotFound, apiErr.Code)

		var count int64
		require.NoError(t, testDB.Model(&models.Submission{}).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("disabled stream is rejected", func(t *testing.T) {
		w := uploadCSV(t, "nis", "survey.csv", validCaseCSV)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var apiErr models.APIError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
		assert.Equal(t, models.ErrorCodeStreamDisabled, apiErr.Code)
	})

	t.Run("missing file field", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, "/api/v1/streams/nnad/submissions", nil)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var apiErr models.APIError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
		assert.Equal(t, models.ErrorCodeMissingFile, apiErr.Code)
	})

	t.Run("unsupported extension for stream", func(t *testing.T) {
		w := uploadCSV(t, "mumps", "cases.json", `[{"condition":"Mumps"}]`)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var apiErr models.APIError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
		assert.Equal(t, models.ErrorCodeUnsupportedType, apiErr.Code)
	})
}

func TestListSubmissions(t *testing.T) {
	clearSubmissionsTable(t)
	uploadCSV(t, "nnad", "GA_cases.csv", validCaseCSV)
	uploadCSV(t, "nnad", "GA_bad.csv", failingCaseCSV)

	t.Run("lists all", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/submissions", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var summaries []models.SubmissionSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
		assert.Len(t, summaries, 2)
	})

	t.Run("filters by status", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/submissions?status=failed", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var summaries []models.SubmissionSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
		require.Len(t, summaries, 1)
		assert.Equal(t, "GA_bad.csv", summaries[0].Filename)
	})

	t.Run("rejects unknown sort field", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/submissions?sort_by=evil", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetSubmission(t *testing.T) {
	clearSubmissionsTable(t)
	w := uploadCSV(t, "nnad", "GA_cases.csv", validCaseCSV)
	require.Equal(t, http.StatusOK, w.Code)

	var payload validation.Payload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))

	t.Run("returns the stored result", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/submissions/"+payload.SubmissionID, nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var stored validation.Payload
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stored))
		assert.Equal(t, payload.SubmissionID, stored.SubmissionID)
		assert.Equal(t, payload.Status, stored.Status)
		assert.Equal(t, payload.RowCount, stored.RowCount)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/submissions/ffffffff", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var apiErr models.APIError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
		assert.Equal(t, models.ErrorCodeSubmissionNotFound, apiErr.Code)
	})
}

func TestListStreams(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/streams", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var streams []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &streams))
	assert.GreaterOrEqual(t, len(streams), 3)

	ids := make([]string, 0, len(streams))
	for _, s := range streams {
		ids = append(ids, s["id"].(string))
	}
	assert.Contains(t, ids, "nnad")
	assert.Contains(t, ids, "mumps")
	assert.Contains(t, ids, "nrevss")
}

func TestStreamStatusDashboard(t *testing.T) {
	clearSubmissionsTable(t)
	uploadCSV(t, "nnad", "GA_cases.csv", validCaseCSV)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/status", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var statuses []models.StreamStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &statuses))

	var nnad *models.StreamStatus
	for i := range statuses {
		if statuses[i].SystemID == "nnad" {
			nnad = &statuses[i]
		}
	}
	require.NotNil(t, nnad)
	assert.Equal(t, 1, nnad.SubmissionCount)
	assert.Equal(t, 1, nnad.PassedCount)
	assert.False(t, nnad.Overdue)
	require.NotNil(t, nnad.LastSubmission)
}

func TestListJurisdictions(t *testing.T) {
	clearSubmissionsTable(t)
	uploadCSV(t, "nnad", "GA_cases.csv", validCaseCSV)
	uploadCSV(t, "nnad", "GA_more.csv", validCaseCSV)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/jurisdictions", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var activity []models.JurisdictionStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &activity))
	require.Len(t, activity, 1)
	assert.Equal(t, "GA", activity[0].Jurisdiction)
	assert.Equal(t, "Georgia", activity[0].Name)
	assert.Equal(t, 2, activity[0].SubmissionCount)
}

func TestClearSubmissions(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "s3cret")

	clearAll := func(t *testing.T, password string) *httptest.ResponseRecorder {
		t.Helper()
		req, err := http.NewRequest(http.MethodPost, "/api/v1/admin/clear", nil)
		require.NoError(t, err)
		if password != "" {
			req.Header.Set("X-Admin-Password", password)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("correct password wipes", func(t *testing.T) {
		clearSubmissionsTable(t)
		uploadCSV(t, "nnad", "GA_cases.csv", validCaseCSV)

		w := clearAll(t, "s3cret")

		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(1), resp["deleted"])

		var count int64
		require.NoError(t, testDB.Model(&models.Submission{}).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("missing or wrong password is rejected", func(t *testing.T) {
		clearSubmissionsTable(t)
		uploadCSV(t, "nnad", "GA_cases.csv", validCaseCSV)

		for _, password := range []string{"", "wrong"} {
			w := clearAll(t, password)

			assert.Equal(t, http.StatusForbidden, w.Code)

			var apiErr models.APIError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
			assert.Equal(t, models.ErrorCodeInvalidPassword, apiErr.Code)
		}

		var count int64
		require.NoError(t, testDB.Model(&models.Submission{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("form field password accepted", func(t *testing.T) {
		clearSubmissionsTable(t)

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		require.NoError(t, writer.WriteField("password", "s3cret"))
		require.NoError(t, writer.Close())

		req, err := http.NewRequest(http.MethodPost, "/api/v1/admin/clear", body)
		require.NoError(t, err)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetJurisdiction(t *testing.T) {
	clearSubmissionsTable(t)
	uploadCSV(t, "nnad", "GA_cases.csv", validCaseCSV)

	t.Run("by abbreviation", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/jurisdictions/GA", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var summaries []models.SubmissionSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
		require.Len(t, summaries, 1)
		assert.Equal(t, "GA", summaries[0].Jurisdiction)
		assert.Equal(t, "GA_cases.csv", summaries[0].Filename)
	})

	t.Run("by fips code", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/jurisdictions/13", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var summaries []models.SubmissionSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
		require.Len(t, summaries, 1)
	})

	t.Run("no submissions yields empty list", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/jurisdictions/WY", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("unknown code returns 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/jurisdictions/ZZ", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var apiErr models.APIError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
		assert.Equal(t, models.ErrorCodeNotFound, apiErr.Code)
	})
}

func TestHealthCheck(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
