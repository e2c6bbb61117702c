package request_models

// SubmitFeedbackRequest is the visitor form payload. Ratings are range-checked by the
// service so the client gets one consistent message for any out-of-range value.
type SubmitFeedbackRequest struct {
	UserRole    string  `json:"user_role" binding:"required"`
	Subject     string  `json:"subject" binding:"required"`
	Q1          int     `json:"q1"`
	Q2          int     `json:"q2"`
	Q3          int     `json:"q3"`
	Q4          int     `json:"q4"`
	Q5          int     `json:"q5"`
	Q6          int     `json:"q6"`
	Comment     *string `json:"comment"`
	Fingerprint string  `json:"fingerprint" binding:"max=255"`
}

func (r SubmitFeedbackRequest) Ratings() [6]int {
	return [6]int{r.Q1, r.Q2, r.Q3, r.Q4, r.Q5, r.Q6}
}

type DeleteFeedbackRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,uuid"`
}
