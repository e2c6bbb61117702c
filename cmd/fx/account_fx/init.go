package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"expofeedback/internal/api/controllers"
	"expofeedback/internal/config"
	"expofeedback/internal/repositories"
	"expofeedback/internal/services"
	"expofeedback/pkg/logger"
	"expofeedback/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideAdminRepo, provideTokenManager, provideAccountController)

func provideAdminRepo(db *gorm.DB) repositories.AdminRepository {
	return repositories.NewAdminRepository(db)
}

func provideTokenManager(cfg *config.Config) *utils.TokenManager {
	return utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
}

func provideAccountService(
	adminRepo repositories.AdminRepository,
	tokens *utils.TokenManager,
	cfg *config.Config,
	log logger.Interface,
) services.AccountServiceInterface {
	return services.NewAccountService(adminRepo, tokens, cfg.Auth.TokenTTL(), cfg.Auth.BcryptCost, log)
}

func provideAccountController(accountService services.AccountServiceInterface) *controllers.AccountController {
	return controllers.NewAccountController(accountService)
}
