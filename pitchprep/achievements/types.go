package achievements

import "time"

// Category selects which account aggregate an achievement is measured against
type Category string

const (
	// count categories compare a completed-activity count to the threshold
	CategoryStreak        Category = "streak"
	CategoryRoleplayCount Category = "roleplay_count"
	CategoryExamCount     Category = "exam_count"
	CategoryFeedbackCount Category = "feedback_count"

	// score categories compare the best observed score to the threshold;
	// the two comparison modes share a catalog shape but are never conflated
	CategoryExamScore Category = "exam_score"
)

// Achievement is one catalog entry, unlocked once an account's aggregate
// crosses its threshold. The catalog is effectively immutable.
type Achievement struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  Category `json:"category"`
	Threshold int      `json:"threshold"`
	Points    int      `json:"points"`
	Rank      int      `json:"rank"`
}

// AccountAchievement joins an account to an earned achievement
type AccountAchievement struct {
	AccountID     string    `json:"account_id"`
	AchievementID string    `json:"achievement_id"`
	EarnedAt      time.Time `json:"earned_at"`
	Displayed     bool      `json:"displayed"`
}

// Metrics are the per-account aggregates achievements are measured against
type Metrics struct {
	Streak             int
	RoleplaysCompleted int
	ExamsCompleted     int
	FeedbackCompleted  int
	BestExamScore      int
}
