package submission_log_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"expofeedback/internal/api/controllers"
	"expofeedback/internal/repositories"
	"expofeedback/internal/services"
	"expofeedback/pkg/logger"
)

var Module = fx.Provide(
	provideSubmissionLogRepo, provideSubmissionLogService, provideRecorder, provideSubmissionLogController,
)

func provideSubmissionLogRepo(db *gorm.DB) repositories.SubmissionLogRepository {
	return repositories.NewSubmissionLogRepository(db)
}

func provideSubmissionLogService(repo repositories.SubmissionLogRepository, log logger.Interface) services.SubmissionLogServiceInterface {
	return services.NewSubmissionLogService(repo, log)
}

func provideRecorder(svc services.SubmissionLogServiceInterface) services.SubmissionRecorder {
	return svc
}

func provideSubmissionLogController(svc services.SubmissionLogServiceInterface) *controllers.SubmissionLogController {
	return controllers.NewSubmissionLogController(svc)
}
