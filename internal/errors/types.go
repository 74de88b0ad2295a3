package errors

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`             // error code (e.g., "unauthorized", "quota_exceeded")
	Message string `json:"message"`           // user-friendly message
	Details string `json:"details,omitempty"` // optional details (sanitized in production)
	Feature string `json:"feature,omitempty"` // gated feature, set on quota errors
	Tier    string `json:"tier,omitempty"`    // subscription tier, set on quota errors
}
