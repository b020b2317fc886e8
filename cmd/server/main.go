package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aryansawant3579-cell/review-app/config"
	"github.com/aryansawant3579-cell/review-app/internal/app/controller"
	"github.com/aryansawant3579-cell/review-app/internal/app/repository"
	"github.com/aryansawant3579-cell/review-app/internal/app/service"
	"github.com/aryansawant3579-cell/review-app/internal/db"
	"github.com/aryansawant3579-cell/review-app/internal/middleware"
	"github.com/aryansawant3579-cell/review-app/internal/router"
	"github.com/aryansawant3579-cell/review-app/internal/scheduler"
	"github.com/aryansawant3579-cell/review-app/pkg/logger"
	appredis "github.com/aryansawant3579-cell/review-app/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Review Management Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize redis for dashboard caching and token revocation
	if cfg.Redis.Enabled {
		if err := appredis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, continuing without cache", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer func() {
				if err := appredis.Close(); err != nil {
					logger.Error("Failed to close redis connection", err)
				}
			}()
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	branchRepo := repository.NewBranchRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	templateRepo := repository.NewTemplateRepository(db.GetDB())
	analyticsRepo := repository.NewAnalyticsRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	branchService := service.NewBranchService(branchRepo)
	templateService := service.NewTemplateService(templateRepo)
	analyticsService := service.NewAnalyticsService(reviewRepo, branchRepo, userRepo, analyticsRepo)
	reviewService := service.NewReviewService(reviewRepo, branchRepo, userRepo, analyticsService)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	branchController := controller.NewBranchController(branchService)
	reviewController := controller.NewReviewController(reviewService)
	templateController := controller.NewTemplateController(templateService)
	analyticsController := controller.NewAnalyticsController(analyticsService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the nightly analytics rollup
	analyticsScheduler := scheduler.NewAnalyticsScheduler(analyticsService)
	if err := analyticsScheduler.Start(); err != nil {
		logger.Warn("Analytics scheduler failed to start", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer analyticsScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		branchController,
		reviewController,
		templateController,
		analyticsController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
