package model

import (
	"time"
)

// DailyAnalytics is a persisted per-branch, per-calendar-day rollup.
// Rows are upserted after review mutations and by the nightly scheduler.
type DailyAnalytics struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	BranchID      uint      `gorm:"not null;index:idx_branch_date,unique" json:"branch_id"`
	Date          string    `gorm:"type:varchar(10);not null;index:idx_branch_date,unique" json:"date"` // ISO calendar date
	TotalReviews  int       `gorm:"default:0" json:"total_reviews"`
	AvgRating     float64   `gorm:"default:0" json:"avg_rating"`
	PositiveCount int       `gorm:"default:0" json:"positive_count"`
	NeutralCount  int       `gorm:"default:0" json:"neutral_count"`
	NegativeCount int       `gorm:"default:0" json:"negative_count"`
	ResponseRate  float64   `gorm:"default:0" json:"response_rate"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Branch Branch `gorm:"foreignKey:BranchID" json:"-"`
}

func (DailyAnalytics) TableName() string {
	return "daily_analytics"
}
