package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"expofeedback/internal/models/request_models"
	resp "expofeedback/internal/models/response_models"
	"expofeedback/internal/repositories"
	"expofeedback/internal/services"
	"expofeedback/pkg/utils"
)

type FeedbackController struct {
	feedbackService services.FeedbackServiceInterface
}

func NewFeedbackController(feedbackService services.FeedbackServiceInterface) *FeedbackController {
	return &FeedbackController{feedbackService: feedbackService}
}

// SubmitFeedback godoc
// @Summary Submit exhibition feedback
// @Description Stores six 1-5 ratings for a subject. With protection on, a device that already rated the subject is rejected with 403.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param request body request_models.SubmitFeedbackRequest true "Feedback payload"
// @Success 201 {object} db_models.Feedback
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /feedback [post]
func (f *FeedbackController) SubmitFeedback(c *gin.Context) {
	var req request_models.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	feedback, err := f.feedbackService.Submit(c.Request.Context(), services.SubmitInput{
		Attempt:  attemptFrom(c, req.Fingerprint),
		UserRole: req.UserRole,
		Subject:  req.Subject,
		Ratings:  req.Ratings(),
		Comment:  req.Comment,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, feedback)
}

// ListFeedback godoc
// @Summary List feedback
// @Description Get a paginated list of feedback, newest first
// @Tags Feedback
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20) minimum(1) maximum(100)
// @Param subject query string false "Exact subject filter"
// @Param user_role query string false "Role filter"
// @Success 200 {object} utils.APIResponse{data=response_models.FeedbackPage}
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/feedback [get]
func (f *FeedbackController) ListFeedback(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size")
		return
	}

	result, err := f.feedbackService.ListFeedback(c.Request.Context(), repositories.FeedbackFilter{
		Page:     page,
		PageSize: pageSize,
		Subject:  c.Query("subject"),
		UserRole: c.Query("user_role"),
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Feedback fetched successfully")
}

// DeleteFeedback godoc
// @Summary Bulk delete feedback
// @Description Submission logs that pointed at deleted rows keep their audit entry with feedback_id cleared
// @Tags Feedback
// @Accept json
// @Produce json
// @Param request body request_models.DeleteFeedbackRequest true "Feedback ids"
// @Success 200 {object} utils.APIResponse{data=response_models.DeleteResult}
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/feedback [delete]
func (f *FeedbackController) DeleteFeedback(c *gin.Context) {
	var req request_models.DeleteFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "ids must be a non-empty list of UUIDs")
		return
	}

	ids, err := parseUUIDs(req.IDs)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "ids must be a non-empty list of UUIDs")
		return
	}

	n, err := f.feedbackService.DeleteFeedback(c.Request.Context(), ids)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp.DeleteResult{Deleted: n}, "Feedback deleted")
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
