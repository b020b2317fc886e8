package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/aryansawant3579-cell/review-app/internal/app/model"
	"github.com/aryansawant3579-cell/review-app/internal/app/repository"
	"github.com/aryansawant3579-cell/review-app/pkg/logger"
	appredis "github.com/aryansawant3579-cell/review-app/pkg/redis"
)

var (
	ErrReviewNotFound   = errors.New("review not found")
	ErrAlreadyResponded = errors.New("review already has a response")
	ErrEmptyResponse    = errors.New("response text must not be empty")
)

type CreateReviewInput struct {
	BranchID      uint
	Rating        int
	Title         string
	Content       string
	Source        string
	Category      string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

type ReviewService interface {
	Create(input CreateReviewInput) (*model.Review, error)
	Get(id uint) (*model.Review, error)
	List(userID uint, filter repository.ReviewFilter, page, perPage int) ([]model.Review, int64, int, error)
	Respond(reviewID, responderID uint, text string) (*model.Review, error)
	Escalate(reviewID uint) (*model.Review, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	branchRepo repository.BranchRepository
	userRepo   repository.UserRepository
	analytics  AnalyticsService
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	branchRepo repository.BranchRepository,
	userRepo repository.UserRepository,
	analytics AnalyticsService,
) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		branchRepo: branchRepo,
		userRepo:   userRepo,
		analytics:  analytics,
	}
}

// visibilityScope restricts staff with an assigned branch to that
// branch. Admins and owners see everything.
func visibilityScope(user *model.User) *uint {
	if user.Role == model.RoleStaff && user.BranchID != nil {
		return user.BranchID
	}
	return nil
}

func (s *reviewService) Create(input CreateReviewInput) (*model.Review, error) {
	sentiment, category, err := Classify(input.Content, input.Rating, input.Category)
	if err != nil {
		logger.Warn("Review rejected by classifier", map[string]interface{}{
			"branch_id": input.BranchID,
			"rating":    input.Rating,
			"error":     err.Error(),
		})
		return nil, err
	}

	if _, err := s.branchRepo.FindByID(input.BranchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Review rejected: unknown branch", map[string]interface{}{
				"branch_id": input.BranchID,
			})
			return nil, ErrBranchNotFound
		}
		logger.Error("Failed to fetch branch", err, map[string]interface{}{
			"branch_id": input.BranchID,
		})
		return nil, err
	}

	review := &model.Review{
		BranchID:      input.BranchID,
		Source:        model.NormalizeSource(input.Source),
		Rating:        input.Rating,
		Title:         input.Title,
		Content:       input.Content,
		Category:      category,
		Sentiment:     sentiment,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
	}

	if err := s.reviewRepo.Create(review); err != nil {
		logger.Error("Failed to create review", err, map[string]interface{}{
			"branch_id": input.BranchID,
		})
		return nil, err
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id": review.ID,
		"branch_id": review.BranchID,
		"source":    review.Source,
		"sentiment": review.Sentiment,
	})

	s.afterMutation(review.BranchID)
	return review, nil
}

func (s *reviewService) Get(id uint) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) List(userID uint, filter repository.ReviewFilter, page, perPage int) ([]model.Review, int64, int, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, 0, ErrUserNotFound
		}
		return nil, 0, 0, err
	}
	filter.ScopeBranchID = visibilityScope(user)

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	offset := (page - 1) * perPage
	reviews, total, err := s.reviewRepo.List(filter, offset, perPage)
	if err != nil {
		logger.Error("Failed to list reviews", err, map[string]interface{}{
			"user_id": userID,
			"page":    page,
		})
		return nil, 0, 0, err
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		pages = 1
	}

	if reviews == nil {
		reviews = []model.Review{}
	}
	return reviews, total, pages, nil
}

func (s *reviewService) Respond(reviewID, responderID uint, text string) (*model.Review, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}

	responder, err := s.userRepo.FindByID(responderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.IsResponded {
		return nil, ErrAlreadyResponded
	}

	// The conditional update decides the race; the existence check above
	// only distinguishes NotFound from AlreadyResponded.
	ok, err := s.reviewRepo.MarkResponded(reviewID, text, responder.FullName, responderID, time.Now())
	if err != nil {
		logger.Error("Failed to record response", err, map[string]interface{}{
			"review_id": reviewID,
			"user_id":   responderID,
		})
		return nil, err
	}
	if !ok {
		logger.Warn("Duplicate response rejected", map[string]interface{}{
			"review_id": reviewID,
			"user_id":   responderID,
		})
		return nil, ErrAlreadyResponded
	}

	updated, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		return nil, err
	}

	logger.Info("Response recorded", map[string]interface{}{
		"review_id": reviewID,
		"user_id":   responderID,
	})

	s.afterMutation(updated.BranchID)
	return updated, nil
}

// Escalate flags a review for managerial attention. Escalating an
// already-escalated review is a no-op, not an error.
func (s *reviewService) Escalate(reviewID uint) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	if review.IsEscalated {
		return review, nil
	}

	if err := s.reviewRepo.MarkEscalated(reviewID); err != nil {
		logger.Error("Failed to escalate review", err, map[string]interface{}{
			"review_id": reviewID,
		})
		return nil, err
	}

	updated, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		return nil, err
	}

	logger.Info("Review escalated", map[string]interface{}{
		"review_id": reviewID,
	})

	s.afterMutation(updated.BranchID)
	return updated, nil
}

// afterMutation drops cached dashboard snapshots and refreshes the
// branch's daily rollup. Both are best effort; the mutation itself has
// already committed.
func (s *reviewService) afterMutation(branchID uint) {
	appredis.CacheDelPattern(context.Background(), "dashboard:*")

	if s.analytics == nil {
		return
	}
	if err := s.analytics.RollupBranchDay(branchID, time.Now()); err != nil {
		logger.Warn("Daily analytics rollup failed", map[string]interface{}{
			"branch_id": branchID,
			"error":     err.Error(),
		})
	}
}
