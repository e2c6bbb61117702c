package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"expofeedback/internal/models/request_models"
	resp "expofeedback/internal/models/response_models"
	"expofeedback/internal/services"
	"expofeedback/pkg/utils"
)

type SubmissionLogController struct {
	logService services.SubmissionLogServiceInterface
}

func NewSubmissionLogController(logService services.SubmissionLogServiceInterface) *SubmissionLogController {
	return &SubmissionLogController{logService: logService}
}

// ListLogs godoc
// @Summary List submission logs
// @Description Audit trail of accepted and blocked submissions, newest first
// @Tags SubmissionLogs
// @Produce json
// @Param limit query int false "Page size (max 500)" default(50)
// @Param offset query int false "Rows to skip" default(0)
// @Param blocked query bool false "Only blocked (true) or only accepted (false)"
// @Success 200 {object} utils.APIResponse{data=response_models.SubmissionLogPage}
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/submission-logs [get]
func (s *SubmissionLogController) ListLogs(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit")
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid offset")
		return
	}

	var blocked *bool
	if raw, ok := c.GetQuery("blocked"); ok && raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "blocked must be true or false")
			return
		}
		blocked = &b
	}

	page, err := s.logService.ListLogs(c.Request.Context(), limit, offset, blocked)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, page, "Submission logs fetched successfully")
}

// DeleteLogs godoc
// @Summary Delete submission logs
// @Description Delete by ids, or everything with all=true (optionally only rows older than older_than_days)
// @Tags SubmissionLogs
// @Accept json
// @Produce json
// @Param request body request_models.DeleteSubmissionLogsRequest true "Selection"
// @Success 200 {object} utils.APIResponse{data=response_models.DeleteResult}
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/submission-logs [delete]
func (s *SubmissionLogController) DeleteLogs(c *gin.Context) {
	var req request_models.DeleteSubmissionLogsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	ids, err := parseUUIDs(req.IDs)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "ids must be UUIDs")
		return
	}

	n, err := s.logService.DeleteLogs(c.Request.Context(), services.DeleteLogsInput{
		IDs:           ids,
		All:           req.All,
		OlderThanDays: req.OlderThanDays,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp.DeleteResult{Deleted: n}, "Submission logs deleted")
}
