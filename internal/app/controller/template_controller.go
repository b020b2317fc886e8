package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aryansawant3579-cell/review-app/internal/app/service"
	apperrors "github.com/aryansawant3579-cell/review-app/internal/errors"
	"github.com/aryansawant3579-cell/review-app/internal/middleware"
)

type TemplateController struct {
	templateService service.TemplateService
}

func NewTemplateController(templateService service.TemplateService) *TemplateController {
	return &TemplateController{templateService: templateService}
}

type CreateTemplateRequest struct {
	Name          string `json:"name" binding:"required"`
	TemplateText  string `json:"template_text" binding:"required"`
	Category      string `json:"category"`
	SentimentType string `json:"sentiment_type"`
}

// ListTemplates returns the active reply templates
// GET /api/templates
func (ctrl *TemplateController) ListTemplates(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	templates, err := ctrl.templateService.ListActive()
	if err != nil {
		log.Error("Failed to list templates", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, templates)
}

// CreateTemplate registers a new reply template
// POST /api/templates
func (ctrl *TemplateController) CreateTemplate(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid template data")
		return
	}

	template, err := ctrl.templateService.Create(userID, service.CreateTemplateInput{
		Name:          req.Name,
		TemplateText:  req.TemplateText,
		Category:      req.Category,
		SentimentType: req.SentimentType,
	})
	if err != nil {
		log.Error("Failed to create template", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Template created successfully",
		"template": template,
	})
}
