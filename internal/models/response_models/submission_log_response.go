package response_models

import "time"

type SubmissionLogView struct {
	ID                 string    `json:"id"`
	IPAddress          string    `json:"ip_address"`
	FingerprintHash    string    `json:"fingerprint_hash"`
	FingerprintDisplay string    `json:"fingerprint_display"`
	UserAgent          string    `json:"user_agent"`
	FeedbackID         *string   `json:"feedback_id"`
	Blocked            bool      `json:"blocked"`
	BlockReason        *string   `json:"block_reason"`
	CreatedAt          time.Time `json:"created_at"`
}

type SubmissionLogPage struct {
	Logs   []SubmissionLogView `json:"logs"`
	Total  int64               `json:"total"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}

type DeleteResult struct {
	Deleted int64 `json:"deleted"`
}
