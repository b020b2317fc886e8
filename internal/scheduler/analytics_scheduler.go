package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aryansawant3579-cell/review-app/internal/app/service"
	"github.com/aryansawant3579-cell/review-app/pkg/logger"
)

// AnalyticsScheduler rolls up per-branch daily review statistics.
type AnalyticsScheduler struct {
	cron             *cron.Cron
	analyticsService service.AnalyticsService
}

func NewAnalyticsScheduler(analyticsService service.AnalyticsService) *AnalyticsScheduler {
	return &AnalyticsScheduler{
		cron:             cron.New(),
		analyticsService: analyticsService,
	}
}

// Start schedules the daily rollup shortly after midnight so the
// previous day's reviews are complete when it runs.
func (s *AnalyticsScheduler) Start() error {
	_, err := s.cron.AddFunc("5 0 * * *", func() {
		yesterday := time.Now().AddDate(0, 0, -1)
		logger.Info("Starting scheduled analytics rollup", map[string]interface{}{
			"date": yesterday.Format("2006-01-02"),
		})

		if err := s.analyticsService.RollupAll(yesterday); err != nil {
			logger.Error("Failed to roll up daily analytics", err)
			return
		}

		logger.Info("Completed scheduled analytics rollup", nil)
	})

	if err != nil {
		logger.Error("Failed to add cron job for analytics rollup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Analytics scheduler started (daily at 00:05)", nil)

	return nil
}

func (s *AnalyticsScheduler) Stop() {
	logger.Info("Stopping analytics scheduler...", nil)
	s.cron.Stop()
	logger.Info("Analytics scheduler stopped", nil)
}
