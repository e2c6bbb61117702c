package controllers

import (
	"github.com/gin-gonic/gin"

	"expofeedback/internal/services"
	"expofeedback/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardService
}

func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetDashboard godoc
// @Summary Get dashboard report
// @Description Totals, average score, per-question averages, per-subject and per-role breakdowns, and the number of blocked attempts
// @Tags Dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response_models.DashboardReport}
// @Failure 500 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/dashboard/stats [get]
func (p *DashboardController) GetDashboard(c *gin.Context) {
	report, err := p.dashboardService.BuildDashboard(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Dashboard fetched successfully")
}
