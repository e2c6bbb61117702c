package response_models

type ProtectionCheckResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
	Error   string `json:"error,omitempty"`
}

type ProtectionStatusResponse struct {
	Enabled bool `json:"enabled"`
}
