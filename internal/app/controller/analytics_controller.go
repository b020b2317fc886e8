package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aryansawant3579-cell/review-app/internal/app/service"
	apperrors "github.com/aryansawant3579-cell/review-app/internal/errors"
	"github.com/aryansawant3579-cell/review-app/internal/middleware"
)

type AnalyticsController struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsController(analyticsService service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService}
}

// GetDashboard returns the aggregate dashboard snapshot
// GET /api/analytics/dashboard
func (ctrl *AnalyticsController) GetDashboard(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	snapshot, err := ctrl.analyticsService.Dashboard(userID)
	if err != nil {
		log.Error("Failed to build dashboard snapshot", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetTrends returns the daily trend series for the requested window
// GET /api/analytics/trends?days=N
func (ctrl *AnalyticsController) GetTrends(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.AnalyticsInvalidWindow, "Window must be a positive number of days")
		return
	}

	trends, err := ctrl.analyticsService.Trends(userID, days)
	if err != nil {
		if errors.Is(err, service.ErrInvalidWindow) {
			apperrors.BadRequest(c, apperrors.AnalyticsInvalidWindow, "Window must be a positive number of days")
			return
		}
		log.Error("Failed to build trend series", err, map[string]interface{}{
			"user_id": userID,
			"days":    days,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"days":   days,
		"trends": trends,
	})
}
