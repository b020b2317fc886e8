package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/aryansawant3579-cell/review-app/internal/app/model"
)

// ReviewFilter narrows review queries. Zero values mean "no constraint";
// all present filters are conjunctive. ScopeBranchID is the caller's
// visibility scope (staff assigned to a branch) and is applied on top of
// the explicit BranchID filter.
type ReviewFilter struct {
	Sentiment     model.Sentiment
	Category      model.ReviewCategory
	Source        model.ReviewSource
	BranchID      uint
	ScopeBranchID *uint
}

// BranchStat is a per-branch aggregate row for the dashboard.
type BranchStat struct {
	BranchID     uint    `json:"branch_id"`
	BranchName   string  `json:"branch_name"`
	AvgRating    float64 `json:"avg_rating"`
	TotalReviews int64   `json:"total_reviews"`
}

// SentimentCount is one bucket of the sentiment breakdown.
type SentimentCount struct {
	Sentiment model.Sentiment
	Count     int64
}

type ReviewRepository interface {
	Create(review *model.Review) error
	BulkCreate(reviews []model.Review, batchSize int) error
	FindByID(id uint) (*model.Review, error)
	List(filter ReviewFilter, offset, limit int) ([]model.Review, int64, error)
	MarkResponded(id uint, text, staffName string, responderID uint, at time.Time) (bool, error)
	MarkEscalated(id uint) error

	CountAll(scope *uint) (int64, error)
	CountResponded(scope *uint) (int64, error)
	AvgRating(scope *uint) (float64, error)
	CountBySentiment(scope *uint) ([]SentimentCount, error)
	BranchStats(scope *uint) ([]BranchStat, error)
	FindCreatedSince(since time.Time, scope *uint) ([]model.Review, error)
	FindByBranchBetween(branchID uint, from, to time.Time) ([]model.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) BulkCreate(reviews []model.Review, batchSize int) error {
	return r.db.CreateInBatches(reviews, batchSize).Error
}

func (r *reviewRepository) FindByID(id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) applyFilter(query *gorm.DB, filter ReviewFilter) *gorm.DB {
	if filter.Sentiment != "" {
		query = query.Where("sentiment = ?", filter.Sentiment)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}
	if filter.BranchID != 0 {
		query = query.Where("branch_id = ?", filter.BranchID)
	}
	if filter.ScopeBranchID != nil {
		query = query.Where("branch_id = ?", *filter.ScopeBranchID)
	}
	return query
}

func (r *reviewRepository) List(filter ReviewFilter, offset, limit int) ([]model.Review, int64, error) {
	var reviews []model.Review
	var total int64

	query := r.applyFilter(r.db.Model(&model.Review{}), filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Ties on created_at are broken by id so pagination stays stable.
	err := query.
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// MarkResponded records a response only when none exists yet. The
// conditional WHERE serializes concurrent responders at the row level;
// the loser sees zero affected rows.
func (r *reviewRepository) MarkResponded(id uint, text, staffName string, responderID uint, at time.Time) (bool, error) {
	result := r.db.Model(&model.Review{}).
		Where("id = ? AND is_responded = ?", id, false).
		Updates(map[string]interface{}{
			"is_responded":  true,
			"response_text": text,
			"staff_name":    staffName,
			"responded_by":  responderID,
			"responded_at":  at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *reviewRepository) MarkEscalated(id uint) error {
	return r.db.Model(&model.Review{}).
		Where("id = ?", id).
		UpdateColumn("is_escalated", true).Error
}

func (r *reviewRepository) scoped(scope *uint) *gorm.DB {
	query := r.db.Model(&model.Review{})
	if scope != nil {
		query = query.Where("branch_id = ?", *scope)
	}
	return query
}

func (r *reviewRepository) CountAll(scope *uint) (int64, error) {
	var count int64
	err := r.scoped(scope).Count(&count).Error
	return count, err
}

func (r *reviewRepository) CountResponded(scope *uint) (int64, error) {
	var count int64
	err := r.scoped(scope).Where("is_responded = ?", true).Count(&count).Error
	return count, err
}

func (r *reviewRepository) AvgRating(scope *uint) (float64, error) {
	var avg float64
	err := r.scoped(scope).Select("COALESCE(AVG(rating), 0)").Scan(&avg).Error
	return avg, err
}

func (r *reviewRepository) CountBySentiment(scope *uint) ([]SentimentCount, error) {
	var rows []SentimentCount
	err := r.scoped(scope).
		Select("sentiment, COUNT(*) AS count").
		Group("sentiment").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reviewRepository) BranchStats(scope *uint) ([]BranchStat, error) {
	var stats []BranchStat
	query := r.scoped(scope).
		Select("reviews.branch_id, branches.name AS branch_name, AVG(reviews.rating) AS avg_rating, COUNT(*) AS total_reviews").
		Joins("JOIN branches ON branches.id = reviews.branch_id").
		Group("reviews.branch_id, branches.name").
		Order("reviews.branch_id")
	if err := query.Scan(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *reviewRepository) FindCreatedSince(since time.Time, scope *uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.scoped(scope).
		Where("created_at >= ?", since).
		Order("created_at").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByBranchBetween(branchID uint, from, to time.Time) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.Model(&model.Review{}).
		Where("branch_id = ? AND created_at >= ? AND created_at < ?", branchID, from, to).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
