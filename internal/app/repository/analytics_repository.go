package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/aryansawant3579-cell/review-app/internal/app/model"
)

type AnalyticsRepository interface {
	Upsert(entry *model.DailyAnalytics) error
	FindByBranchAndDate(branchID uint, date string) (*model.DailyAnalytics, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// Upsert replaces the rollup row for (branch, date) if one exists,
// otherwise inserts it.
func (r *analyticsRepository) Upsert(entry *model.DailyAnalytics) error {
	var existing model.DailyAnalytics
	err := r.db.Where("branch_id = ? AND date = ?", entry.BranchID, entry.Date).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(entry).Error
	}
	if err != nil {
		return err
	}

	return r.db.Model(&existing).Updates(map[string]interface{}{
		"total_reviews":  entry.TotalReviews,
		"avg_rating":     entry.AvgRating,
		"positive_count": entry.PositiveCount,
		"neutral_count":  entry.NeutralCount,
		"negative_count": entry.NegativeCount,
		"response_rate":  entry.ResponseRate,
	}).Error
}

func (r *analyticsRepository) FindByBranchAndDate(branchID uint, date string) (*model.DailyAnalytics, error) {
	var entry model.DailyAnalytics
	if err := r.db.Where("branch_id = ? AND date = ?", branchID, date).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}
