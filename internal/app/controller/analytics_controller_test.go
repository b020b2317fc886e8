package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryansawant3579-cell/review-app/internal/app/model"
	"github.com/aryansawant3579-cell/review-app/internal/app/repository"
	"github.com/aryansawant3579-cell/review-app/internal/app/service"
	"github.com/aryansawant3579-cell/review-app/internal/db"
	"github.com/aryansawant3579-cell/review-app/internal/middleware"
	"github.com/aryansawant3579-cell/review-app/pkg/util"
)

type analyticsControllerEnv struct {
	router     *gin.Engine
	reviewRepo repository.ReviewRepository
	branch     *model.Branch
	adminToken string
}

func setupAnalyticsControllerTest(t *testing.T) *analyticsControllerEnv {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	branchRepo := repository.NewBranchRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)
	analyticsRepo := repository.NewAnalyticsRepository(testDB)

	branch := &model.Branch{Name: "Downtown", Location: "12 Main St", BranchCode: "DT01"}
	require.NoError(t, branchRepo.Create(branch))

	admin := &model.User{
		Email:        "admin@test.local",
		PasswordHash: "not-a-real-hash",
		FullName:     "Asha Admin",
		Role:         model.RoleAdmin,
	}
	require.NoError(t, userRepo.Create(admin))

	tokens, err := util.GenerateTokenPair(admin.ID, admin.Email, string(admin.Role), "test-secret", 15*time.Minute, time.Hour)
	require.NoError(t, err)

	analyticsService := service.NewAnalyticsService(reviewRepo, branchRepo, userRepo, analyticsRepo)
	ctrl := NewAnalyticsController(analyticsService)
	authMiddleware := middleware.NewAuthMiddleware("test-secret")

	router := gin.New()
	authed := router.Group("/api/analytics", authMiddleware.Authenticate())
	{
		authed.GET("/dashboard", ctrl.GetDashboard)
		authed.GET("/trends", ctrl.GetTrends)
	}

	return &analyticsControllerEnv{
		router:     router,
		reviewRepo: reviewRepo,
		branch:     branch,
		adminToken: tokens.AccessToken,
	}
}

func (env *analyticsControllerEnv) get(t *testing.T, path string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if authed {
		req.Header.Set("Authorization", "Bearer "+env.adminToken)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestAnalyticsController_GetDashboard(t *testing.T) {
	env := setupAnalyticsControllerTest(t)

	require.NoError(t, env.reviewRepo.Create(&model.Review{
		BranchID:  env.branch.ID,
		Source:    model.SourceInternal,
		Rating:    4,
		Content:   "nice",
		Sentiment: model.SentimentPositive,
	}))

	w := env.get(t, "/api/analytics/dashboard", true)
	assert.Equal(t, http.StatusOK, w.Code)

	var snapshot service.DashboardSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Equal(t, int64(1), snapshot.TotalReviews)
	assert.Equal(t, 4.0, snapshot.AvgRating)
	assert.Equal(t, int64(1), snapshot.Sentiments.Positive)
	require.Len(t, snapshot.BranchStats, 1)
}

func TestAnalyticsController_GetDashboard_EmptyStore(t *testing.T) {
	env := setupAnalyticsControllerTest(t)

	w := env.get(t, "/api/analytics/dashboard", true)
	assert.Equal(t, http.StatusOK, w.Code)

	var snapshot service.DashboardSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Equal(t, int64(0), snapshot.TotalReviews)
	assert.Equal(t, 0.0, snapshot.AvgRating)
	assert.NotNil(t, snapshot.BranchStats)
}

func TestAnalyticsController_GetDashboard_RequiresAuth(t *testing.T) {
	env := setupAnalyticsControllerTest(t)

	w := env.get(t, "/api/analytics/dashboard", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAnalyticsController_GetTrends(t *testing.T) {
	env := setupAnalyticsControllerTest(t)

	w := env.get(t, "/api/analytics/trends?days=7", true)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Days   int                            `json:"days"`
		Trends map[string]service.TrendBucket `json:"trends"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 7, response.Days)
	assert.Len(t, response.Trends, 7)
}

func TestAnalyticsController_GetTrends_DefaultWindow(t *testing.T) {
	env := setupAnalyticsControllerTest(t)

	w := env.get(t, "/api/analytics/trends", true)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Days   int                            `json:"days"`
		Trends map[string]service.TrendBucket `json:"trends"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 30, response.Days)
	assert.Len(t, response.Trends, 30)
}

func TestAnalyticsController_GetTrends_InvalidWindow(t *testing.T) {
	env := setupAnalyticsControllerTest(t)

	for _, query := range []string{"days=0", "days=-5", "days=abc"} {
		w := env.get(t, "/api/analytics/trends?"+query, true)
		assert.Equal(t, http.StatusBadRequest, w.Code, "query %s", query)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "ANALYTICS_INVALID_WINDOW", response["error"])
	}
}
