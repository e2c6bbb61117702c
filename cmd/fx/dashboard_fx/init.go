package dashboard_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"expofeedback/internal/api/controllers"
	"expofeedback/internal/repositories"
	"expofeedback/internal/services"
)

var Module = fx.Provide(
	provideDashboardRepo, provideDashboardService, provideDashboardController,
)

func provideDashboardRepo(db *gorm.DB) repositories.DashboardRepository {
	return repositories.NewDashboardRepository(db)
}

func provideDashboardService(
	dashboardRepo repositories.DashboardRepository,
	logs repositories.SubmissionLogRepository,
	settings services.SettingsServiceInterface,
) services.DashboardService {
	return services.NewDashboardService(dashboardRepo, logs, settings)
}

func provideDashboardController(dashboardService services.DashboardService) *controllers.DashboardController {
	return controllers.NewDashboardController(dashboardService)
}
