package router

import (
	"net/http/httptest"
	"testing"
	"time"

	"expensetracker/config"
	"expensetracker/database"
	"expensetracker/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupRouterTest(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, func()) {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		JWT: config.JWTConfig{
			Secret:     "router-test-secret",
			ExpireTime: time.Hour,
		},
	}
	config.GlobalConfig = cfg
	middleware.InitJWT(cfg)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB

	return SetupRouter(cfg), mock, func() {
		database.DB = oldDB
		config.GlobalConfig = nil
		sqlDB.Close()
	}
}

func TestUnauthenticatedRequestsNeverReachTheStore(t *testing.T) {
	r, mock, cleanup := setupRouterTest(t)
	defer cleanup()

	cases := []struct {
		method string
		path   string
	}{
		{"POST", "/api/addexpenses"},
		{"GET", "/api/expenses"},
		{"GET", "/api/expenses/statistics"},
		{"PUT", "/api/expenses/1"},
		{"DELETE", "/api/expenses/1"},
		{"GET", "/api/export/csv"},
		{"GET", "/api/auth/profile"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, 401, w.Code, "%s %s", tc.method, tc.path)
		assert.Contains(t, w.Body.String(), "No token, authorization denied")
	}

	// the mock carries no expectations: any query would have failed the test
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMalformedTokenRejected(t *testing.T) {
	r, mock, cleanup := setupRouterTest(t)
	defer cleanup()

	req := httptest.NewRequest("GET", "/api/expenses", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestValidTokenReachesHandler(t *testing.T) {
	r, mock, cleanup := setupRouterTest(t)
	defer cleanup()

	token, err := middleware.GenerateToken(42, "someone", time.Hour)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "category", "note", "created_at", "updated_at"}))

	req := httptest.NewRequest("GET", "/api/expenses", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "[]", w.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicRoutes(t *testing.T) {
	r, _, cleanup := setupRouterTest(t)
	defer cleanup()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "ok")

	req = httptest.NewRequest("GET", "/api/categories", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "Food")
}

func TestCORSPreflight(t *testing.T) {
	r, _, cleanup := setupRouterTest(t)
	defer cleanup()

	req := httptest.NewRequest("OPTIONS", "/api/expenses", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 204, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
