package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aryansawant3579-cell/review-app/internal/app/model"
	"github.com/aryansawant3579-cell/review-app/internal/app/repository"
	"github.com/aryansawant3579-cell/review-app/pkg/logger"
	appredis "github.com/aryansawant3579-cell/review-app/pkg/redis"
)

var ErrInvalidWindow = errors.New("window days must be positive")

const (
	dashboardCacheTTL = time.Minute
	isoDateFormat     = "2006-01-02"
)

// SentimentBuckets always carries all three buckets, zero-filled.
type SentimentBuckets struct {
	Positive int64 `json:"positive"`
	Neutral  int64 `json:"neutral"`
	Negative int64 `json:"negative"`
}

// DashboardSnapshot is the point-in-time metric set for the dashboard.
type DashboardSnapshot struct {
	TotalReviews int64                   `json:"total_reviews"`
	AvgRating    float64                 `json:"avg_rating"`
	ResponseRate float64                 `json:"response_rate"`
	Sentiments   SentimentBuckets        `json:"sentiments"`
	BranchStats  []repository.BranchStat `json:"branch_stats"`
}

// TrendBucket is one calendar-day aggregate in a trend series.
type TrendBucket struct {
	Total     int     `json:"total"`
	AvgRating float64 `json:"avg_rating"`
	Positive  int     `json:"positive"`
	Neutral   int     `json:"neutral"`
	Negative  int     `json:"negative"`
}

type AnalyticsService interface {
	Dashboard(userID uint) (*DashboardSnapshot, error)
	Trends(userID uint, windowDays int) (map[string]TrendBucket, error)
	RollupBranchDay(branchID uint, day time.Time) error
	RollupAll(day time.Time) error
}

type analyticsService struct {
	reviewRepo    repository.ReviewRepository
	branchRepo    repository.BranchRepository
	userRepo      repository.UserRepository
	analyticsRepo repository.AnalyticsRepository
}

func NewAnalyticsService(
	reviewRepo repository.ReviewRepository,
	branchRepo repository.BranchRepository,
	userRepo repository.UserRepository,
	analyticsRepo repository.AnalyticsRepository,
) AnalyticsService {
	return &analyticsService{
		reviewRepo:    reviewRepo,
		branchRepo:    branchRepo,
		userRepo:      userRepo,
		analyticsRepo: analyticsRepo,
	}
}

// round1 applies the fixed one-decimal rounding policy shared by all
// aggregate metrics.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func (s *analyticsService) scopeFor(userID uint) (*uint, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return visibilityScope(user), nil
}

func dashboardCacheKey(scope *uint) string {
	if scope == nil {
		return "dashboard:all"
	}
	return fmt.Sprintf("dashboard:branch:%d", *scope)
}

func (s *analyticsService) Dashboard(userID uint) (*DashboardSnapshot, error) {
	scope, err := s.scopeFor(userID)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	cacheKey := dashboardCacheKey(scope)
	if cached, ok := appredis.CacheGet(ctx, cacheKey); ok {
		var snapshot DashboardSnapshot
		if err := json.Unmarshal([]byte(cached), &snapshot); err == nil {
			return &snapshot, nil
		}
	}

	snapshot, err := s.computeSnapshot(scope)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(snapshot); err == nil {
		appredis.CacheSet(ctx, cacheKey, string(payload), dashboardCacheTTL)
	}

	return snapshot, nil
}

func (s *analyticsService) computeSnapshot(scope *uint) (*DashboardSnapshot, error) {
	total, err := s.reviewRepo.CountAll(scope)
	if err != nil {
		return nil, err
	}

	snapshot := &DashboardSnapshot{
		TotalReviews: total,
		BranchStats:  []repository.BranchStat{},
	}
	if total == 0 {
		return snapshot, nil
	}

	avg, err := s.reviewRepo.AvgRating(scope)
	if err != nil {
		return nil, err
	}
	snapshot.AvgRating = round1(avg)

	responded, err := s.reviewRepo.CountResponded(scope)
	if err != nil {
		return nil, err
	}
	snapshot.ResponseRate = round1(float64(responded) / float64(total) * 100)

	counts, err := s.reviewRepo.CountBySentiment(scope)
	if err != nil {
		return nil, err
	}
	for _, c := range counts {
		switch c.Sentiment {
		case model.SentimentPositive:
			snapshot.Sentiments.Positive = c.Count
		case model.SentimentNeutral:
			snapshot.Sentiments.Neutral = c.Count
		case model.SentimentNegative:
			snapshot.Sentiments.Negative = c.Count
		}
	}

	stats, err := s.reviewRepo.BranchStats(scope)
	if err != nil {
		return nil, err
	}
	for i := range stats {
		stats[i].AvgRating = round1(stats[i].AvgRating)
	}
	if stats != nil {
		snapshot.BranchStats = stats
	}

	return snapshot, nil
}

// Trends returns exactly windowDays contiguous calendar-day buckets
// ending today, zero-filled for days without reviews.
func (s *analyticsService) Trends(userID uint, windowDays int) (map[string]TrendBucket, error) {
	if windowDays <= 0 {
		return nil, ErrInvalidWindow
	}

	scope, err := s.scopeFor(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	start := today.AddDate(0, 0, -(windowDays - 1))

	trends := make(map[string]TrendBucket, windowDays)
	for i := 0; i < windowDays; i++ {
		trends[start.AddDate(0, 0, i).Format(isoDateFormat)] = TrendBucket{}
	}

	reviews, err := s.reviewRepo.FindCreatedSince(start, scope)
	if err != nil {
		logger.Error("Failed to load reviews for trend window", err, map[string]interface{}{
			"window_days": windowDays,
		})
		return nil, err
	}

	ratingSums := make(map[string]int, windowDays)
	for i := range reviews {
		key := reviews[i].CreatedAt.In(time.Local).Format(isoDateFormat)
		bucket, ok := trends[key]
		if !ok {
			continue
		}

		bucket.Total++
		switch reviews[i].Sentiment {
		case model.SentimentPositive:
			bucket.Positive++
		case model.SentimentNeutral:
			bucket.Neutral++
		case model.SentimentNegative:
			bucket.Negative++
		}
		ratingSums[key] += reviews[i].Rating
		trends[key] = bucket
	}

	for key, bucket := range trends {
		if bucket.Total > 0 {
			bucket.AvgRating = round1(float64(ratingSums[key]) / float64(bucket.Total))
			trends[key] = bucket
		}
	}

	return trends, nil
}

// RollupBranchDay recomputes the persisted daily rollup row for one
// branch and calendar day.
func (s *analyticsService) RollupBranchDay(branchID uint, day time.Time) error {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 0, 1)

	reviews, err := s.reviewRepo.FindByBranchBetween(branchID, from, to)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		return nil
	}

	entry := &model.DailyAnalytics{
		BranchID: branchID,
		Date:     from.Format(isoDateFormat),
	}

	ratingSum := 0
	responded := 0
	for i := range reviews {
		entry.TotalReviews++
		ratingSum += reviews[i].Rating
		if reviews[i].IsResponded {
			responded++
		}
		switch reviews[i].Sentiment {
		case model.SentimentPositive:
			entry.PositiveCount++
		case model.SentimentNeutral:
			entry.NeutralCount++
		case model.SentimentNegative:
			entry.NegativeCount++
		}
	}
	entry.AvgRating = round1(float64(ratingSum) / float64(entry.TotalReviews))
	entry.ResponseRate = round1(float64(responded) / float64(entry.TotalReviews) * 100)

	return s.analyticsRepo.Upsert(entry)
}

// RollupAll recomputes the daily rollup for every branch. Invoked by
// the nightly scheduler.
func (s *analyticsService) RollupAll(day time.Time) error {
	branches, err := s.branchRepo.FindAll()
	if err != nil {
		return err
	}

	for i := range branches {
		if err := s.RollupBranchDay(branches[i].ID, day); err != nil {
			logger.Error("Branch rollup failed", err, map[string]interface{}{
				"branch_id": branches[i].ID,
			})
			return err
		}
	}

	logger.Info("Daily analytics rollup completed", map[string]interface{}{
		"branches": len(branches),
		"date":     day.Format(isoDateFormat),
	})
	return nil
}
