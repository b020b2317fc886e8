package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aryansawant3579-cell/review-app/internal/app/model"
	"github.com/aryansawant3579-cell/review-app/internal/app/repository"
	"github.com/aryansawant3579-cell/review-app/internal/app/service"
	apperrors "github.com/aryansawant3579-cell/review-app/internal/errors"
	"github.com/aryansawant3579-cell/review-app/internal/middleware"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

type CreateReviewRequest struct {
	BranchID      uint   `json:"branch_id" binding:"required"`
	Rating        int    `json:"rating" binding:"required"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Source        string `json:"source"`
	Category      string `json:"category"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

type RespondRequest struct {
	ResponseText string `json:"response_text"`
}

// CreateReview accepts a public or authenticated review submission
// POST /api/reviews
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid review data")
		return
	}

	review, err := ctrl.reviewService.Create(service.CreateReviewInput{
		BranchID:      req.BranchID,
		Rating:        req.Rating,
		Title:         req.Title,
		Content:       req.Content,
		Source:        req.Source,
		Category:      req.Category,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "Rating must be between 1 and 5")
		case errors.Is(err, service.ErrEmptyContent):
			apperrors.BadRequest(c, apperrors.ReviewEmptyContent, "Review content must not be empty")
		case errors.Is(err, service.ErrBranchNotFound):
			apperrors.NotFound(c, apperrors.BranchNotFound, "Branch not found")
		default:
			log.Error("Failed to create review", err, map[string]interface{}{
				"branch_id": req.BranchID,
			})
			info := apperrors.ParseError(err, "review")
			apperrors.RespondWithError(c, info.Status, info.Code, info.Message)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review created successfully",
		"review":  review,
	})
}

// ListReviews returns a filtered, paginated review listing
// GET /api/reviews
func (ctrl *ReviewController) ListReviews(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	branchID, _ := strconv.ParseUint(c.Query("branch_id"), 10, 32)

	filter := repository.ReviewFilter{
		Sentiment: model.Sentiment(c.Query("sentiment")),
		Category:  model.ReviewCategory(c.Query("category")),
		Source:    model.ReviewSource(c.Query("source")),
		BranchID:  uint(branchID),
	}

	reviews, total, pages, err := ctrl.reviewService.List(userID, filter, page, perPage)
	if err != nil {
		log.Error("Failed to list reviews", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews":      reviews,
		"total":        total,
		"pages":        pages,
		"current_page": page,
	})
}

// GetReview returns a single review
// GET /api/reviews/:id
func (ctrl *ReviewController) GetReview(c *gin.Context) {
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid review ID")
		return
	}

	review, err := ctrl.reviewService.Get(uint(reviewID))
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
			return
		}
		info := apperrors.ParseError(err, "review")
		apperrors.RespondWithError(c, info.Status, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, review)
}

// RespondToReview records the one-time staff response
// POST /api/reviews/:id/respond
func (ctrl *ReviewController) RespondToReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid review ID")
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid response data")
		return
	}

	review, err := ctrl.reviewService.Respond(uint(reviewID), userID, req.ResponseText)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
		case errors.Is(err, service.ErrEmptyResponse):
			apperrors.BadRequest(c, apperrors.ReviewEmptyResponse, "Response text must not be empty")
		case errors.Is(err, service.ErrAlreadyResponded):
			apperrors.Conflict(c, apperrors.ReviewAlreadyResponded, "Review already has a response")
		default:
			log.Error("Failed to respond to review", err, map[string]interface{}{
				"review_id": reviewID,
				"user_id":   userID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Response added successfully",
		"review":  review,
	})
}

// EscalateReview flags a review for managerial attention (idempotent)
// POST /api/reviews/:id/escalate
func (ctrl *ReviewController) EscalateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid review ID")
		return
	}

	review, err := ctrl.reviewService.Escalate(uint(reviewID))
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
			return
		}
		log.Error("Failed to escalate review", err, map[string]interface{}{
			"review_id": reviewID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review escalated successfully",
		"review":  review,
	})
}
