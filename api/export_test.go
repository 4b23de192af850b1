package api

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"expensetracker/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportHandler_CSV(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	mock, cleanup := setupMockDB(t)
	defer cleanup()

	created := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(expenseColumns()).
			AddRow(2, 1, 1200, "Rent", "", created, created).
			AddRow(1, 1, 42.5, "Food", "lunch", created.Add(-time.Hour), created.Add(-time.Hour)))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/csv", NewExportHandler().ExportCSV)

	req := httptest.NewRequest("GET", "/export/csv", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Amount,Category,Note,Created At", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "1200.00")
	assert.Contains(t, lines[1], "Rent")
	assert.Contains(t, lines[2], "42.50")
	assert.Contains(t, lines[2], "lunch")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_JSON(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(expenseColumns()).
			AddRow(1, 1, 100, "Food", "", now, now).
			AddRow(2, 1, 50.5, "Fuel", "", now, now))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/json", NewExportHandler().ExportJSON)

	req := httptest.NewRequest("GET", "/export/json", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		TotalCount  int     `json:"total_count"`
		TotalAmount float64 `json:"total_amount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalCount)
	assert.Equal(t, 150.5, resp.TotalAmount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_BadDateRange(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	mock, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/json", NewExportHandler().ExportJSON)

	req := httptest.NewRequest("GET", "/export/json?start=03-10-2026", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// rejected before any query runs
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "2006-01-02")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_XLSX(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(expenseColumns()).
			AddRow(1, 1, 100, "Food", "", now, now))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/xlsx", NewExportHandler().ExportXLSX)

	req := httptest.NewRequest("GET", "/export/xlsx", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	// xlsx files are zip archives
	assert.Equal(t, "PK", w.Body.String()[:2])
	require.NoError(t, mock.ExpectationsWereMet())
}
