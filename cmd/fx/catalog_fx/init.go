package catalog_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"expofeedback/internal/api/controllers"
	"expofeedback/internal/repositories"
	"expofeedback/internal/services"
)

var Module = fx.Provide(
	provideCatalogRepo, provideCatalogService, provideCatalogController,
)

func provideCatalogRepo(db *gorm.DB) repositories.CatalogRepository {
	return repositories.NewCatalogRepository(db)
}

func provideCatalogService(repo repositories.CatalogRepository) services.CatalogServiceInterface {
	return services.NewCatalogService(repo)
}

func provideCatalogController(svc services.CatalogServiceInterface) *controllers.CatalogController {
	return controllers.NewCatalogController(svc)
}
