package request_models

type ProtectionCheckRequest struct {
	Fingerprint string `json:"fingerprint"`
	Subject     string `json:"subject"`
}

type SetProtectionRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}
