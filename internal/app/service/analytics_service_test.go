package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aryansawant3579-cell/review-app/internal/app/model"
	"github.com/aryansawant3579-cell/review-app/internal/app/repository"
	"github.com/aryansawant3579-cell/review-app/internal/db"
)

type analyticsTestEnv struct {
	db            *gorm.DB
	service       AnalyticsService
	reviewRepo    repository.ReviewRepository
	analyticsRepo repository.AnalyticsRepository
	branch        *model.Branch
	second        *model.Branch
	admin         *model.User
}

func setupAnalyticsServiceTest(t *testing.T) *analyticsTestEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	branchRepo := repository.NewBranchRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)
	analyticsRepo := repository.NewAnalyticsRepository(testDB)

	branch := &model.Branch{Name: "Downtown", Location: "12 Main St", BranchCode: "DT01"}
	require.NoError(t, branchRepo.Create(branch))
	second := &model.Branch{Name: "Uptown", Location: "9 Hill Rd", BranchCode: "UT01"}
	require.NoError(t, branchRepo.Create(second))

	admin := &model.User{
		Email:        "admin@test.local",
		PasswordHash: "not-a-real-hash",
		FullName:     "Asha Admin",
		Role:         model.RoleAdmin,
	}
	require.NoError(t, userRepo.Create(admin))

	svc := NewAnalyticsService(reviewRepo, branchRepo, userRepo, analyticsRepo)

	return &analyticsTestEnv{
		db:            testDB,
		service:       svc,
		reviewRepo:    reviewRepo,
		analyticsRepo: analyticsRepo,
		branch:        branch,
		second:        second,
		admin:         admin,
	}
}

func (env *analyticsTestEnv) seedReview(t *testing.T, branchID uint, rating int, sentiment model.Sentiment, responded bool, createdAt time.Time) {
	review := &model.Review{
		BranchID:    branchID,
		Source:      model.SourceInternal,
		Rating:      rating,
		Content:     "seeded",
		Sentiment:   sentiment,
		IsResponded: responded,
		CreatedAt:   createdAt,
	}
	require.NoError(t, env.reviewRepo.Create(review))
}

func TestAnalyticsService_Dashboard_EmptyStore(t *testing.T) {
	env := setupAnalyticsServiceTest(t)

	snapshot, err := env.service.Dashboard(env.admin.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(0), snapshot.TotalReviews)
	assert.Equal(t, 0.0, snapshot.AvgRating)
	assert.Equal(t, 0.0, snapshot.ResponseRate)
	assert.Equal(t, SentimentBuckets{}, snapshot.Sentiments)
	assert.NotNil(t, snapshot.BranchStats)
	assert.Empty(t, snapshot.BranchStats)
}

func TestAnalyticsService_Dashboard(t *testing.T) {
	env := setupAnalyticsServiceTest(t)
	now := time.Now()

	env.seedReview(t, env.branch.ID, 5, model.SentimentPositive, true, now)
	env.seedReview(t, env.branch.ID, 4, model.SentimentPositive, false, now)
	env.seedReview(t, env.branch.ID, 1, model.SentimentNegative, true, now)
	env.seedReview(t, env.second.ID, 3, model.SentimentNeutral, false, now)

	snapshot, err := env.service.Dashboard(env.admin.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(4), snapshot.TotalReviews)
	// (5+4+1+3)/4 = 3.25 rounded to one decimal
	assert.Equal(t, 3.3, snapshot.AvgRating)
	// 2 of 4 responded
	assert.Equal(t, 50.0, snapshot.ResponseRate)
	assert.Equal(t, SentimentBuckets{Positive: 2, Neutral: 1, Negative: 1}, snapshot.Sentiments)

	require.Len(t, snapshot.BranchStats, 2)
	assert.Equal(t, env.branch.ID, snapshot.BranchStats[0].BranchID)
	assert.Equal(t, "Downtown", snapshot.BranchStats[0].BranchName)
	assert.Equal(t, int64(3), snapshot.BranchStats[0].TotalReviews)
	// (5+4+1)/3 = 3.333... rounded to one decimal
	assert.Equal(t, 3.3, snapshot.BranchStats[0].AvgRating)
	assert.Equal(t, env.second.ID, snapshot.BranchStats[1].BranchID)
	assert.Equal(t, int64(1), snapshot.BranchStats[1].TotalReviews)
	assert.Equal(t, 3.0, snapshot.BranchStats[1].AvgRating)
}

func TestAnalyticsService_Dashboard_StaffScoped(t *testing.T) {
	env := setupAnalyticsServiceTest(t)
	now := time.Now()

	userRepo := repository.NewUserRepository(env.db)
	staff := &model.User{
		Email:        "staff@test.local",
		PasswordHash: "not-a-real-hash",
		FullName:     "Sam Staff",
		Role:         model.RoleStaff,
		BranchID:     &env.branch.ID,
	}
	require.NoError(t, userRepo.Create(staff))

	env.seedReview(t, env.branch.ID, 4, model.SentimentPositive, false, now)
	env.seedReview(t, env.second.ID, 2, model.SentimentNegative, false, now)

	snapshot, err := env.service.Dashboard(staff.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), snapshot.TotalReviews)
	assert.Equal(t, 4.0, snapshot.AvgRating)
	require.Len(t, snapshot.BranchStats, 1)
	assert.Equal(t, env.branch.ID, snapshot.BranchStats[0].BranchID)
}

func TestAnalyticsService_Trends_ZeroFilledWindow(t *testing.T) {
	env := setupAnalyticsServiceTest(t)

	trends, err := env.service.Trends(env.admin.ID, 7)
	require.NoError(t, err)
	require.Len(t, trends, 7)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	for i := 0; i < 7; i++ {
		key := today.AddDate(0, 0, -i).Format("2006-01-02")
		bucket, ok := trends[key]
		require.True(t, ok, "missing day %s", key)
		assert.Equal(t, TrendBucket{}, bucket)
	}
}

func TestAnalyticsService_Trends(t *testing.T) {
	env := setupAnalyticsServiceTest(t)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.Local)
	yesterday := today.AddDate(0, 0, -1)

	env.seedReview(t, env.branch.ID, 5, model.SentimentPositive, false, today)
	env.seedReview(t, env.branch.ID, 2, model.SentimentNegative, false, today)
	env.seedReview(t, env.branch.ID, 3, model.SentimentNeutral, false, yesterday)
	// Outside the window, must not leak in.
	env.seedReview(t, env.branch.ID, 1, model.SentimentNegative, false, today.AddDate(0, 0, -10))

	trends, err := env.service.Trends(env.admin.ID, 7)
	require.NoError(t, err)
	require.Len(t, trends, 7)

	todayBucket := trends[today.Format("2006-01-02")]
	assert.Equal(t, 2, todayBucket.Total)
	assert.Equal(t, 1, todayBucket.Positive)
	assert.Equal(t, 1, todayBucket.Negative)
	assert.Equal(t, 0, todayBucket.Neutral)
	// (5+2)/2 = 3.5
	assert.Equal(t, 3.5, todayBucket.AvgRating)

	yesterdayBucket := trends[yesterday.Format("2006-01-02")]
	assert.Equal(t, 1, yesterdayBucket.Total)
	assert.Equal(t, 3.0, yesterdayBucket.AvgRating)

	total := 0
	for _, bucket := range trends {
		total += bucket.Total
	}
	assert.Equal(t, 3, total)
}

func TestAnalyticsService_Trends_InvalidWindow(t *testing.T) {
	env := setupAnalyticsServiceTest(t)

	_, err := env.service.Trends(env.admin.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = env.service.Trends(env.admin.ID, -3)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	trends, err := env.service.Trends(env.admin.ID, 1)
	require.NoError(t, err)
	assert.Len(t, trends, 1)
}

func TestAnalyticsService_RollupBranchDay(t *testing.T) {
	env := setupAnalyticsServiceTest(t)

	now := time.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 10, 0, 0, 0, time.Local)

	env.seedReview(t, env.branch.ID, 5, model.SentimentPositive, true, day)
	env.seedReview(t, env.branch.ID, 2, model.SentimentNegative, false, day)

	require.NoError(t, env.service.RollupBranchDay(env.branch.ID, day))

	entry, err := env.analyticsRepo.FindByBranchAndDate(env.branch.ID, day.Format("2006-01-02"))
	require.NoError(t, err)
	assert.Equal(t, 2, entry.TotalReviews)
	assert.Equal(t, 1, entry.PositiveCount)
	assert.Equal(t, 1, entry.NegativeCount)
	assert.Equal(t, 0, entry.NeutralCount)
	assert.Equal(t, 3.5, entry.AvgRating)
	assert.Equal(t, 50.0, entry.ResponseRate)

	// A second rollup updates the same row instead of duplicating it.
	env.seedReview(t, env.branch.ID, 4, model.SentimentPositive, false, day)
	require.NoError(t, env.service.RollupBranchDay(env.branch.ID, day))

	entry, err = env.analyticsRepo.FindByBranchAndDate(env.branch.ID, day.Format("2006-01-02"))
	require.NoError(t, err)
	assert.Equal(t, 3, entry.TotalReviews)

	var count int64
	require.NoError(t, env.db.Model(&model.DailyAnalytics{}).
		Where("branch_id = ?", env.branch.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAnalyticsService_RollupBranchDay_NoReviews(t *testing.T) {
	env := setupAnalyticsServiceTest(t)

	day := time.Now()
	require.NoError(t, env.service.RollupBranchDay(env.branch.ID, day))

	_, err := env.analyticsRepo.FindByBranchAndDate(env.branch.ID, day.Format("2006-01-02"))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAnalyticsService_RollupAll(t *testing.T) {
	env := setupAnalyticsServiceTest(t)

	now := time.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 10, 0, 0, 0, time.Local)

	env.seedReview(t, env.branch.ID, 4, model.SentimentPositive, false, day)
	env.seedReview(t, env.second.ID, 2, model.SentimentNegative, false, day)

	require.NoError(t, env.service.RollupAll(day))

	first, err := env.analyticsRepo.FindByBranchAndDate(env.branch.ID, day.Format("2006-01-02"))
	require.NoError(t, err)
	assert.Equal(t, 1, first.TotalReviews)

	second, err := env.analyticsRepo.FindByBranchAndDate(env.second.ID, day.Format("2006-01-02"))
	require.NoError(t, err)
	assert.Equal(t, 1, second.TotalReviews)
}
