package auth

import "github.com/pitchprep/server/pitchprep/accounts"

// RegisterRequest for creating an account
type RegisterRequest struct {
	Handle     string `json:"handle" binding:"required,min=3,max=40"`
	Secret     string `json:"secret" binding:"required,min=8,max=128"`
	Email      string `json:"email" binding:"omitempty,email,max=200"`
	EventTrack string `json:"event_track" binding:"max=60"`
}

// LoginRequest for credential login
type LoginRequest struct {
	Handle string `json:"handle" binding:"required"`
	Secret string `json:"secret" binding:"required"`
}

// AuthResponse returned after register and login
type AuthResponse struct {
	Account *accounts.Account `json:"account"`
	Token   string            `json:"token"`
}

// AccountResponse wraps account data
type AccountResponse struct {
	Account *accounts.Account `json:"account"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}

// UpdateProfileRequest for updating email and event track
type UpdateProfileRequest struct {
	Email      string `json:"email" binding:"omitempty,email,max=200"`
	EventTrack string `json:"event_track" binding:"max=60"`
}
