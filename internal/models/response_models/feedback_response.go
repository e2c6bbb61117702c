package response_models

import "expofeedback/internal/models/db_models"

type FeedbackPage struct {
	Items    []db_models.Feedback `json:"items"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}
