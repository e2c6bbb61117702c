package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"expofeedback/internal/models/request_models"
	resp "expofeedback/internal/models/response_models"
	"expofeedback/internal/services"
	"expofeedback/pkg/logger"
	"expofeedback/pkg/utils"
)

type ProtectionController struct {
	gate     services.ProtectionServiceInterface
	settings services.SettingsServiceInterface
	log      logger.Interface
}

func NewProtectionController(
	gate services.ProtectionServiceInterface,
	settings services.SettingsServiceInterface,
	log logger.Interface,
) *ProtectionController {
	return &ProtectionController{gate: gate, settings: settings, log: log.Named("protection_http")}
}

// attemptFrom collects the caller identity the server can observe.
func attemptFrom(c *gin.Context, fingerprint string) services.Attempt {
	return services.Attempt{
		Fingerprint: fingerprint,
		IPAddress:   utils.ClientIP(c.Request.Header),
		UserAgent:   c.Request.UserAgent(),
	}
}

// Check godoc
// @Summary Check whether a device may submit feedback
// @Description Without a subject this is the page-load pre-check and always allows. With a subject the fingerprint is matched against earlier successful submissions.
// @Tags Protection
// @Accept json
// @Produce json
// @Param request body request_models.ProtectionCheckRequest true "Fingerprint and optional subject"
// @Success 200 {object} response_models.ProtectionCheckResponse
// @Failure 400 {object} response_models.ProtectionCheckResponse
// @Router /protection/check [post]
func (p *ProtectionController) Check(c *gin.Context) {
	var req request_models.ProtectionCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// an unreadable body must not lock the visitor out of the form
		p.log.Warn("unreadable protection check body, allowing", "error", err)
		c.JSON(http.StatusOK, resp.ProtectionCheckResponse{Allowed: true, Reason: string(services.ReasonError)})
		return
	}

	decision, err := p.gate.Check(c.Request.Context(), services.CheckInput{
		Attempt: attemptFrom(c, req.Fingerprint),
		Subject: req.Subject,
	})
	if msg, bad := rejectedFingerprint(err); bad {
		c.JSON(http.StatusBadRequest, resp.ProtectionCheckResponse{
			Allowed: false,
			Reason:  string(decision.Reason),
			Error:   msg,
		})
		return
	}
	if err != nil {
		p.log.Error("protection check failed, allowing", "error", err)
		c.JSON(http.StatusOK, resp.ProtectionCheckResponse{Allowed: true, Reason: string(services.ReasonError)})
		return
	}

	c.JSON(http.StatusOK, resp.ProtectionCheckResponse{Allowed: decision.Allowed, Reason: string(decision.Reason)})
}

// Status godoc
// @Summary Read the protection toggle
// @Tags Protection
// @Produce json
// @Success 200 {object} response_models.ProtectionStatusResponse
// @Failure 500 {object} utils.APIResponse
// @Router /protection/status [get]
func (p *ProtectionController) Status(c *gin.Context) {
	enabled, err := p.gate.Status(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.ProtectionStatusResponse{Enabled: enabled})
}

// GetSetting godoc
// @Summary Read the protection toggle (admin)
// @Tags Settings
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response_models.ProtectionStatusResponse}
// @Failure 401 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/settings/protection [get]
func (p *ProtectionController) GetSetting(c *gin.Context) {
	enabled, err := p.settings.IsProtectionEnabled(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp.ProtectionStatusResponse{Enabled: enabled}, "Protection setting fetched")
}

// SetSetting godoc
// @Summary Turn duplicate-submission protection on or off
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body request_models.SetProtectionRequest true "New toggle value"
// @Success 200 {object} utils.APIResponse{data=response_models.ProtectionStatusResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/settings/protection [post]
func (p *ProtectionController) SetSetting(c *gin.Context) {
	var req request_models.SetProtectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "enabled must be a boolean")
		return
	}

	if err := p.settings.SetProtectionEnabled(c.Request.Context(), *req.Enabled); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	p.log.Info("protection toggled by admin", "enabled", *req.Enabled, "admin", c.GetString(utils.CtxUsername))
	utils.RespondSuccess(c, resp.ProtectionStatusResponse{Enabled: *req.Enabled}, "Protection setting updated")
}

func rejectedFingerprint(err error) (string, bool) {
	switch {
	case errors.Is(err, utils.ErrFingerprintRequired):
		return utils.MsgFingerprintRequired, true
	case errors.Is(err, utils.ErrFingerprintTooLong):
		return utils.MsgFingerprintTooLong, true
	}
	return "", false
}
