package feedback_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"expofeedback/internal/api/controllers"
	"expofeedback/internal/config"
	"expofeedback/internal/repositories"
	"expofeedback/internal/services"
	"expofeedback/pkg/logger"
	mem "expofeedback/pkg/memcache"
)

var Module = fx.Provide(
	provideFeedbackRepo, provideFeedbackService, provideFeedbackController,
)

func provideFeedbackRepo(db *gorm.DB) repositories.FeedbackRepositoryInterface {
	return repositories.NewFeedbackRepository(db)
}

func provideFeedbackService(
	feedbackRepo repositories.FeedbackRepositoryInterface,
	logRepo repositories.SubmissionLogRepository,
	settings services.SettingsServiceInterface,
	recorder services.SubmissionRecorder,
	lock mem.SubmissionLock,
	cfg *config.Config,
	log logger.Interface,
) services.FeedbackServiceInterface {
	return services.NewFeedbackService(feedbackRepo, logRepo, settings, recorder, lock, cfg.Protection.LockTTL(), log)
}

func provideFeedbackController(feedbackService services.FeedbackServiceInterface) *controllers.FeedbackController {
	return controllers.NewFeedbackController(feedbackService)
}
