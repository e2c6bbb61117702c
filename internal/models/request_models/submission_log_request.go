package request_models

// DeleteSubmissionLogsRequest deletes either the listed ids or, with All set, every log
// (only those older than OlderThanDays when it is positive).
type DeleteSubmissionLogsRequest struct {
	IDs           []string `json:"ids" binding:"omitempty,dive,uuid"`
	All           bool     `json:"all"`
	OlderThanDays int      `json:"older_than_days" binding:"omitempty,min=1"`
}
