package db

import (
	"github.com/aryansawant3579-cell/review-app/internal/app/model"
	"github.com/aryansawant3579-cell/review-app/pkg/logger"
	"github.com/aryansawant3579-cell/review-app/pkg/util"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Branch{},
		&model.Review{},
		&model.ReplyTemplate{},
		&model.DailyAnalytics{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// seedInitialData creates a bootstrap admin account on a fresh database
// so branch and template management is reachable before any registration.
func seedInitialData() error {
	var count int64
	if err := DB.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := util.HashPassword("admin123")
	if err != nil {
		return err
	}

	admin := &model.User{
		Email:        "admin@example.com",
		PasswordHash: hash,
		FullName:     "System Admin",
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := DB.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("Seeded bootstrap admin account", map[string]interface{}{
		"email": admin.Email,
	})
	return nil
}
