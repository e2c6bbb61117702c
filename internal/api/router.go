package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	_ "expofeedback/docs"
	"expofeedback/internal/api/controllers"
	"expofeedback/internal/config"
	"expofeedback/pkg/logger"
	"expofeedback/pkg/middleware"
	"expofeedback/pkg/utils"
)

const adminRole = "admin"

// RouterParams collects every handler the HTTP surface needs.
type RouterParams struct {
	fx.In

	Config     *config.Config
	Logger     logger.Interface
	Tokens     *utils.TokenManager
	Protection *controllers.ProtectionController
	Feedback   *controllers.FeedbackController
	Logs       *controllers.SubmissionLogController
	Accounts   *controllers.AccountController
	Dashboard  *controllers.DashboardController
	Catalog    *controllers.CatalogController
}

func NewRouter(p RouterParams) *gin.Engine {
	if p.Config.Server.Mode != "" {
		gin.SetMode(p.Config.Server.Mode)
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Logger.Named("http")))
	r.Use(middleware.Recovery(p.Logger.Named("http")))
	r.Use(middleware.CORS(p.Config.Server.AllowedOrigins))

	RegisterRoutes(r, p)
	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	protection := api.Group("/protection")
	protection.POST("/check", p.Protection.Check)
	protection.GET("/status", p.Protection.Status)

	api.POST("/feedback", p.Feedback.SubmitFeedback)
	api.GET("/projects", p.Catalog.ListProjects)
	api.GET("/subjects", p.Catalog.ListSubjects)

	api.POST("/admin/login", p.Accounts.Login)

	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuthMiddleware(p.Tokens), middleware.RoleMiddleware(adminRole))
	{
		admin.GET("/me", p.Accounts.Me)

		admin.GET("/settings/protection", p.Protection.GetSetting)
		admin.POST("/settings/protection", p.Protection.SetSetting)

		admin.GET("/submission-logs", p.Logs.ListLogs)
		admin.DELETE("/submission-logs", p.Logs.DeleteLogs)

		admin.GET("/feedback", p.Feedback.ListFeedback)
		admin.DELETE("/feedback", p.Feedback.DeleteFeedback)

		admin.GET("/dashboard/stats", p.Dashboard.GetDashboard)

		admin.POST("/projects", p.Catalog.CreateProject)
		admin.DELETE("/projects/:id", p.Catalog.DeleteProject)
		admin.POST("/subjects", p.Catalog.CreateSubject)
		admin.DELETE("/subjects/:id", p.Catalog.DeleteSubject)
	}
}
