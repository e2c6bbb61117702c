package response_models

type GroupStat struct {
	Key        string  `json:"key"`
	Count      int64   `json:"count"`
	AvgPercent float64 `json:"avg_percent"`
}

type DashboardReport struct {
	TotalFeedback    int64       `json:"total_feedback"`
	AveragePercent   float64     `json:"average_percent"`
	QuestionAverages [6]float64  `json:"question_averages"`
	BySubject        []GroupStat `json:"by_subject"`
	ByRole           []GroupStat `json:"by_role"`
	BlockedAttempts  int64       `json:"blocked_attempts"`
	ProtectionOn     bool        `json:"protection_enabled"`
}
