package protection_fx

import (
	"go.uber.org/fx"

	"expofeedback/internal/api/controllers"
	"expofeedback/internal/repositories"
	"expofeedback/internal/services"
	"expofeedback/pkg/logger"
)

var Module = fx.Provide(
	provideProtectionService, provideProtectionController,
)

func provideProtectionService(
	settings services.SettingsServiceInterface,
	logs repositories.SubmissionLogRepository,
	feedback repositories.FeedbackRepositoryInterface,
	recorder services.SubmissionRecorder,
	log logger.Interface,
) services.ProtectionServiceInterface {
	return services.NewProtectionService(settings, logs, feedback, recorder, log)
}

func provideProtectionController(
	gate services.ProtectionServiceInterface,
	settings services.SettingsServiceInterface,
	log logger.Interface,
) *controllers.ProtectionController {
	return controllers.NewProtectionController(gate, settings, log)
}
