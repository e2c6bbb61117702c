package settings_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"expofeedback/internal/repositories"
	"expofeedback/internal/services"
	"expofeedback/pkg/logger"
)

var Module = fx.Provide(
	provideSettingsRepo, provideSettingsService,
)

func provideSettingsRepo(db *gorm.DB) repositories.SettingsRepository {
	return repositories.NewSettingsRepository(db)
}

func provideSettingsService(repo repositories.SettingsRepository, log logger.Interface) services.SettingsServiceInterface {
	return services.NewSettingsService(repo, log)
}
