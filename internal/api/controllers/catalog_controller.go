package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"expofeedback/internal/models/request_models"
	"expofeedback/internal/services"
	"expofeedback/pkg/utils"
)

type CatalogController struct {
	catalogService services.CatalogServiceInterface
}

func NewCatalogController(catalogService services.CatalogServiceInterface) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// ListProjects godoc
// @Summary List active exhibition projects
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]db_models.Project}
// @Router /projects [get]
func (cc *CatalogController) ListProjects(c *gin.Context) {
	projects, err := cc.catalogService.ListProjects(c.Request.Context(), true)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, projects, "Projects fetched successfully")
}

// CreateProject godoc
// @Summary Create a project
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body request_models.CreateProjectRequest true "Project"
// @Success 201 {object} utils.APIResponse{data=db_models.Project}
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/projects [post]
func (cc *CatalogController) CreateProject(c *gin.Context) {
	var req request_models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	project, err := cc.catalogService.CreateProject(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccessWithCode(c, http.StatusCreated, project, "Project created")
}

// DeleteProject godoc
// @Summary Delete a project
// @Tags Catalog
// @Param id path string true "Project ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/projects/{id} [delete]
func (cc *CatalogController) DeleteProject(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid project ID")
		return
	}

	if err := cc.catalogService.DeleteProject(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Project deleted")
}

// ListSubjects godoc
// @Summary List active subjects
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]db_models.Subject}
// @Router /subjects [get]
func (cc *CatalogController) ListSubjects(c *gin.Context) {
	subjects, err := cc.catalogService.ListSubjects(c.Request.Context(), true)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, subjects, "Subjects fetched successfully")
}

// CreateSubject godoc
// @Summary Create a subject
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body request_models.CreateSubjectRequest true "Subject"
// @Success 201 {object} utils.APIResponse{data=db_models.Subject}
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/subjects [post]
func (cc *CatalogController) CreateSubject(c *gin.Context) {
	var req request_models.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	subject, err := cc.catalogService.CreateSubject(c.Request.Context(), req.Name)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccessWithCode(c, http.StatusCreated, subject, "Subject created")
}

// DeleteSubject godoc
// @Summary Delete a subject
// @Tags Catalog
// @Param id path string true "Subject ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/subjects/{id} [delete]
func (cc *CatalogController) DeleteSubject(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid subject ID")
		return
	}

	if err := cc.catalogService.DeleteSubject(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Subject deleted")
}
