package kiosk

import "time"

// CheckResult mirrors the protection check response.
type CheckResult struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
	Error   string `json:"error,omitempty"`
}

type FeedbackRequest struct {
	UserRole    string  `json:"user_role"`
	Subject     string  `json:"subject"`
	Q1          int     `json:"q1"`
	Q2          int     `json:"q2"`
	Q3          int     `json:"q3"`
	Q4          int     `json:"q4"`
	Q5          int     `json:"q5"`
	Q6          int     `json:"q6"`
	Comment     *string `json:"comment,omitempty"`
	Fingerprint string  `json:"fingerprint,omitempty"`
}

type Feedback struct {
	ID        string    `json:"id"`
	UserRole  string    `json:"user_role"`
	Subject   string    `json:"subject"`
	Total     int       `json:"total"`
	Percent   float64   `json:"percent"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
