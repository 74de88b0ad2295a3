package billing

// WebhookRequest is the billing provider's tier-change notification
type WebhookRequest struct {
	AccountID string `json:"account_id" binding:"required,uuid"`
	Tier      string `json:"tier" binding:"required"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
