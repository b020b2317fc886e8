package router

import (
	"github.com/gin-gonic/gin"

	"github.com/aryansawant3579-cell/review-app/config"
	"github.com/aryansawant3579-cell/review-app/internal/app/controller"
	"github.com/aryansawant3579-cell/review-app/internal/middleware"
)

type Router struct {
	authController      *controller.AuthController
	branchController    *controller.BranchController
	reviewController    *controller.ReviewController
	templateController  *controller.TemplateController
	analyticsController *controller.AnalyticsController
	authMiddleware      *middleware.AuthMiddleware
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	branchController *controller.BranchController,
	reviewController *controller.ReviewController,
	templateController *controller.TemplateController,
	analyticsController *controller.AnalyticsController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		branchController:    branchController,
		reviewController:    reviewController,
		templateController:  templateController,
		analyticsController: analyticsController,
		authMiddleware:      authMiddleware,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Review API is running",
		})
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
		}

		// Unauthenticated endpoints for the customer-facing review form
		public := api.Group("/public")
		{
			public.GET("/branches", r.branchController.ListPublicBranches)
		}
		api.POST("/reviews", r.reviewController.CreateReview)

		branches := api.Group("/branches")
		branches.Use(r.authMiddleware.Authenticate())
		{
			branches.GET("", r.branchController.ListBranches)
			branches.POST("",
				r.authMiddleware.RequireRole("admin", "owner"),
				r.branchController.CreateBranch,
			)
		}

		reviews := api.Group("/reviews")
		reviews.Use(r.authMiddleware.Authenticate())
		{
			reviews.GET("", r.reviewController.ListReviews)
			reviews.GET("/:id", r.reviewController.GetReview)
			reviews.POST("/:id/respond", r.reviewController.RespondToReview)
			reviews.POST("/:id/escalate", r.reviewController.EscalateReview)
		}

		templates := api.Group("/templates")
		templates.Use(r.authMiddleware.Authenticate())
		{
			templates.GET("", r.templateController.ListTemplates)
			templates.POST("",
				r.authMiddleware.RequireRole("admin", "owner"),
				r.templateController.CreateTemplate,
			)
		}

		analytics := api.Group("/analytics")
		analytics.Use(r.authMiddleware.Authenticate())
		{
			analytics.GET("/dashboard", r.analyticsController.GetDashboard)
			analytics.GET("/trends", r.analyticsController.GetTrends)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
