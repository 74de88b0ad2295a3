package practice

import "github.com/pitchprep/server/pitchprep/achievements"

// FeedbackRequest carries a written-event draft for review
type FeedbackRequest struct {
	Draft string `json:"draft" binding:"required,max=20000"`
}

// ExamRequest selects how many questions to generate
type ExamRequest struct {
	Count int `json:"count" binding:"omitempty,min=1,max=100"`
}

// ScoreRequest submits a completed exam score
type ScoreRequest struct {
	Score int `json:"score" binding:"min=0,max=100"`
}

// ContentResponse wraps generated practice content together with any
// achievements the activity just unlocked. Remaining is -1 on unlimited tiers.
type ContentResponse struct {
	Content     string                            `json:"content"`
	NewlyEarned []achievements.AccountAchievement `json:"newly_earned,omitempty"`
	Remaining   int                               `json:"remaining"`
}

// ScoreResponse acknowledges a recorded score
type ScoreResponse struct {
	BestScore   int                               `json:"best_score"`
	NewlyEarned []achievements.AccountAchievement `json:"newly_earned,omitempty"`
}
