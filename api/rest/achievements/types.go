package achievements

import "github.com/pitchprep/server/pitchprep/achievements"

// CatalogEntry is one achievement with the caller's earned state
type CatalogEntry struct {
	Achievement achievements.Achievement `json:"achievement"`
	Earned      bool                     `json:"earned"`
	Displayed   bool                     `json:"displayed"`
}

// ListResponse returns the full catalog annotated for the caller
type ListResponse struct {
	Achievements []CatalogEntry `json:"achievements"`
}

// CheckResponse returns achievements unlocked by this check
type CheckResponse struct {
	NewlyEarned []achievements.AccountAchievement `json:"newly_earned"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
