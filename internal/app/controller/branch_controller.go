package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aryansawant3579-cell/review-app/internal/app/service"
	apperrors "github.com/aryansawant3579-cell/review-app/internal/errors"
	"github.com/aryansawant3579-cell/review-app/internal/middleware"
)

type BranchController struct {
	branchService service.BranchService
}

func NewBranchController(branchService service.BranchService) *BranchController {
	return &BranchController{branchService: branchService}
}

type CreateBranchRequest struct {
	Name       string `json:"name" binding:"required"`
	Location   string `json:"location" binding:"required"`
	BranchCode string `json:"branch_code" binding:"required"`
}

// ListBranches returns all branches for authenticated users
// GET /api/branches
func (ctrl *BranchController) ListBranches(c *gin.Context) {
	branches, err := ctrl.branchService.List()
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list branches", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, branches)
}

// ListPublicBranches returns the unauthenticated subset for the
// collection form
// GET /api/public/branches
func (ctrl *BranchController) ListPublicBranches(c *gin.Context) {
	branches, err := ctrl.branchService.ListPublic()
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list public branches", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, branches)
}

// CreateBranch creates a new branch (admin/owner only)
// POST /api/branches
func (ctrl *BranchController) CreateBranch(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid branch data")
		return
	}

	branch, err := ctrl.branchService.Create(service.CreateBranchInput{
		Name:       req.Name,
		Location:   req.Location,
		BranchCode: req.BranchCode,
	})
	if err != nil {
		if errors.Is(err, service.ErrBranchCodeExists) {
			apperrors.Conflict(c, apperrors.BranchCodeExists, "Branch code already exists")
			return
		}
		log.Error("Failed to create branch", err, map[string]interface{}{
			"branch_code": req.BranchCode,
		})
		info := apperrors.ParseError(err, "branch")
		apperrors.RespondWithError(c, info.Status, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Branch created successfully",
		"branch":  branch,
	})
}
