package request_models

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"max=4000"`
}

type CreateSubjectRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}
